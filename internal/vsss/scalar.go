package vsss

import (
	"math/big"
	"unicode/utf8"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// validateUTF8 returns b as a string if it is valid UTF-8, else
// ErrNotUTF8.
func validateUTF8(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", ErrNotUTF8
	}
	return string(b), nil
}

// Scalar is an element of the BLS12-381 scalar field, always kept reduced
// modulo the field order.
type Scalar struct {
	v big.Int
}

// order returns the BLS12-381 scalar field modulus.
func order() *big.Int {
	return fr.Modulus()
}

// scalarFromBigInt reduces n modulo the field order.
func scalarFromBigInt(n *big.Int) Scalar {
	var s Scalar
	s.v.Mod(n, order())
	return s
}

// BigInt returns the scalar's value as a big.Int in [0, order).
func (s Scalar) BigInt() *big.Int {
	return new(big.Int).Set(&s.v)
}

// IsZero reports whether the scalar is the additive identity.
func (s Scalar) IsZero() bool {
	return s.v.Sign() == 0
}

// Equal reports whether two scalars carry the same value.
func (s Scalar) Equal(o Scalar) bool {
	return s.v.Cmp(&o.v) == 0
}

// Add returns s + o mod order.
func (s Scalar) Add(o Scalar) Scalar {
	sum := new(big.Int).Add(&s.v, &o.v)
	return scalarFromBigInt(sum)
}

// Mul returns s * o mod order.
func (s Scalar) Mul(o Scalar) Scalar {
	prod := new(big.Int).Mul(&s.v, &o.v)
	return scalarFromBigInt(prod)
}

// Sub returns s - o mod order.
func (s Scalar) Sub(o Scalar) Scalar {
	diff := new(big.Int).Sub(&s.v, &o.v)
	return scalarFromBigInt(diff)
}

// negate returns -s mod order.
func (s Scalar) negate() Scalar {
	neg := new(big.Int).Neg(&s.v)
	return scalarFromBigInt(neg)
}

// Inverse returns the multiplicative inverse of s mod order. s must be
// nonzero.
func (s Scalar) Inverse() (Scalar, error) {
	if s.IsZero() {
		return Scalar{}, ErrMalformedShare
	}
	inv := new(big.Int).ModInverse(&s.v, order())
	if inv == nil {
		return Scalar{}, ErrMalformedShare
	}
	return Scalar{v: *inv}, nil
}

// ScalarFromUint64 builds a small nonzero scalar, used for share x-indices.
func ScalarFromUint64(n uint64) Scalar {
	return scalarFromBigInt(new(big.Int).SetUint64(n))
}

// scalarBytesLen is the fixed little-endian wire width of a Scalar.
const scalarBytesLen = 32

// Bytes serializes the scalar to its canonical 32-byte little-endian form.
func (s Scalar) Bytes() [scalarBytesLen]byte {
	be := s.v.FillBytes(make([]byte, scalarBytesLen))
	var out [scalarBytesLen]byte
	for i := 0; i < scalarBytesLen; i++ {
		out[i] = be[scalarBytesLen-1-i]
	}
	return out
}

// ScalarFromBytes parses a little-endian byte slice (at most 32 bytes) into
// a Scalar, returning ErrInvalidSecret if the value is not canonical (i.e.
// not strictly less than the field order).
func ScalarFromBytes(le []byte) (Scalar, error) {
	if len(le) > scalarBytesLen {
		return Scalar{}, ErrInvalidSecret
	}
	be := make([]byte, len(le))
	for i, b := range le {
		be[len(le)-1-i] = b
	}
	n := new(big.Int).SetBytes(be)
	if n.Cmp(order()) >= 0 {
		return Scalar{}, ErrInvalidSecret
	}
	return Scalar{v: *n}, nil
}

// secretBytesToScalar zero-pads secret on the right to 32 bytes and
// interprets the result as a little-endian canonical scalar, per the split
// precondition: secret length 1..32.
func secretBytesToScalar(secret []byte) (Scalar, error) {
	if len(secret) < 1 || len(secret) > scalarBytesLen {
		return Scalar{}, ErrInvalidSecret
	}
	padded := make([]byte, scalarBytesLen)
	copy(padded, secret)
	return ScalarFromBytes(padded)
}

// ScalarToSecretBytes serializes s to 32 canonical little-endian bytes,
// truncates at the first NUL byte, and validates the remainder as UTF-8.
// This is the inverse of secretBytesToScalar for secrets that do not
// legitimately contain a NUL byte.
func ScalarToSecretBytes(s Scalar) (string, error) {
	le := s.Bytes()
	n := scalarBytesLen
	for i, b := range le {
		if b == 0 {
			n = i
			break
		}
	}
	return validateUTF8(le[:n])
}
