package layer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abc.layer.yml")

	l := New("abc")
	l.Commands = []Command{{Program: "tar", Args: []string{"xf", "abc.tar"}}}

	require.NoError(t, Write(path, l))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, l.UUID, got.UUID)
	assert.Equal(t, l.State, got.State)
	assert.Equal(t, l.Commands, got.Commands)
	assert.Nil(t, got.VSSS)
}

func TestReadRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abc.layer.yml")
	require.NoError(t, os.WriteFile(path, []byte("uuid: abc\nstate: idle\ncommands: []\nbogus: true\n"), 0o600))

	_, err := Read(path)
	assert.Error(t, err)
}

func TestFindLocatesByUUID(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0o700))

	a := New("aaa")
	b := New("bbb")
	require.NoError(t, Write(filepath.Join(dir, "aaa.layer.yml"), a))
	require.NoError(t, Write(filepath.Join(sub, "bbb.layer.yml"), b))

	path, err := Find(dir, ".layer.yml", "bbb", nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(sub, "bbb.layer.yml"), path)
}

func TestFindReportsNotFound(t *testing.T) {
	dir := t.TempDir()
	_, err := Find(dir, ".layer.yml", "missing", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListSkipsUnparsableFiles(t *testing.T) {
	dir := t.TempDir()
	good := New("good")
	require.NoError(t, Write(filepath.Join(dir, "good.layer.yml"), good))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.layer.yml"), []byte("not: [valid"), 0o600))

	var skipped []string
	layers, err := List(dir, ".layer.yml", func(path string, err error) {
		skipped = append(skipped, path)
	})
	require.NoError(t, err)
	require.Len(t, layers, 1)
	assert.Equal(t, "good", layers[0].UUID)
	assert.Len(t, skipped, 1)
}
