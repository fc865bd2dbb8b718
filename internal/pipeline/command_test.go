package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExecutesStepsInOrder(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")

	err := Run(dir, []Step{
		{Program: "sh", Args: []string{"-c", "echo one >> " + out}},
		{Program: "sh", Args: []string{"-c", "echo two >> " + out}},
	})
	require.NoError(t, err)

	body, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(body))
}

func TestRunPipesStdinWhenSet(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")

	err := Run(dir, []Step{
		{Program: "sh", Args: []string{"-c", "cat > " + out}, Stdin: []byte("secret")},
	})
	require.NoError(t, err)

	body, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "secret", string(body))
}

func TestRunAbortsOnNonZeroExit(t *testing.T) {
	dir := t.TempDir()
	err := Run(dir, []Step{
		{Program: "sh", Args: []string{"-c", "exit 1"}},
		{Program: "sh", Args: []string{"-c", "echo should-not-run"}},
	})
	require.Error(t, err)
	var cfe *CommandFailedError
	assert.ErrorAs(t, err, &cfe)
}

func TestRunResolvesRelativeWorkingDir(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.MkdirAll(sub, 0o700))

	out := filepath.Join(sub, "out.txt")
	err := Run(dir, []Step{
		{Program: "sh", Args: []string{"-c", "pwd > out.txt"}, WorkingDir: "sub"},
	})
	require.NoError(t, err)

	body, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(body), "sub")
}
