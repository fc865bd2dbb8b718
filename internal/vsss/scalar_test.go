package vsss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarRoundTrip(t *testing.T) {
	s := ScalarFromUint64(424242)
	b := s.Bytes()
	got, err := ScalarFromBytes(b[:])
	require.NoError(t, err)
	assert.True(t, s.Equal(got))
}

func TestScalarFromBytesRejectsNonCanonical(t *testing.T) {
	// order() is ~2^255; an all-0xFF 32-byte value is far larger and must
	// be rejected as non-canonical.
	b := make([]byte, 32)
	for i := range b {
		b[i] = 0xFF
	}
	_, err := ScalarFromBytes(b)
	assert.ErrorIs(t, err, ErrInvalidSecret)
}

func TestSecretBytesToScalarAndBack(t *testing.T) {
	secret := []byte("hunter2")
	s, err := secretBytesToScalar(secret)
	require.NoError(t, err)

	recovered, err := ScalarToSecretBytes(s)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", recovered)
}

func TestSecretBytesToScalarRejectsOversize(t *testing.T) {
	secret := make([]byte, 33)
	_, err := secretBytesToScalar(secret)
	assert.ErrorIs(t, err, ErrInvalidSecret)
}

func TestScalarToSecretBytesNoTruncationWhenFull(t *testing.T) {
	secret := make([]byte, 32)
	for i := range secret {
		secret[i] = 'A'
	}
	s, err := secretBytesToScalar(secret)
	require.NoError(t, err)

	recovered, err := ScalarToSecretBytes(s)
	require.NoError(t, err)
	assert.Equal(t, string(secret), recovered)
}
