package vsss

import "encoding/base64"

// Share is a single Feldman VSSS share: a point (X, Y) on the sharing
// polynomial, X always nonzero. It round-trips byte-for-byte through
// base64 as required by the wire form.
type Share struct {
	X Scalar
	Y Scalar
}

// shareBytesLen is the fixed wire width of a Share: X and Y, each a
// 32-byte little-endian scalar.
const shareBytesLen = 2 * scalarBytesLen

// Bytes serializes the share as X || Y, each little-endian.
func (s Share) Bytes() []byte {
	out := make([]byte, 0, shareBytesLen)
	xb := s.X.Bytes()
	yb := s.Y.Bytes()
	out = append(out, xb[:]...)
	out = append(out, yb[:]...)
	return out
}

// ShareFromBytes parses a share previously produced by Bytes.
func ShareFromBytes(b []byte) (Share, error) {
	if len(b) != shareBytesLen {
		return Share{}, ErrMalformedShare
	}
	x, err := ScalarFromBytes(b[:scalarBytesLen])
	if err != nil {
		return Share{}, ErrMalformedShare
	}
	y, err := ScalarFromBytes(b[scalarBytesLen:])
	if err != nil {
		return Share{}, ErrMalformedShare
	}
	if x.IsZero() {
		return Share{}, ErrMalformedShare
	}
	return Share{X: x, Y: y}, nil
}

// Base64 returns the share's standard-alphabet, padded base64 encoding, the
// wire form shares travel in (CLI stdout, HTTP request bodies).
func (s Share) Base64() string {
	return base64.StdEncoding.EncodeToString(s.Bytes())
}

// ShareFromBase64 decodes and parses a base64-encoded share.
func ShareFromBase64(s string) (Share, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return Share{}, ErrMalformedShare
	}
	return ShareFromBytes(raw)
}
