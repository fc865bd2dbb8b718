package vsss

import (
	"crypto/rand"
	"io"
	"math/big"
)

// FeldmanVerifier is the public commitment sequence produced by Split: the
// generator and one G1 commitment per polynomial coefficient, in degree
// order (Commitments[0] commits to the secret itself).
type FeldmanVerifier struct {
	Generator   G1Point   `yaml:"generator" json:"generator"`
	Commitments []G1Point `yaml:"commitments" json:"commitments"`
}

// Threshold returns the number of shares required to reconstruct, i.e. the
// degree of the sharing polynomial plus one.
func (v FeldmanVerifier) Threshold() int {
	return len(v.Commitments)
}

// Verify reports whether share lies on the committed polynomial: it
// computes Σ_j Commitments[j]·x^j and compares against y·G.
func (v FeldmanVerifier) Verify(share Share) bool {
	if len(v.Commitments) == 0 {
		return false
	}

	x := share.X.BigInt()
	xPow := big.NewInt(1)

	acc := v.Commitments[0].scalarMul(xPow)
	for j := 1; j < len(v.Commitments); j++ {
		xPow = new(big.Int).Mul(xPow, x)
		xPow.Mod(xPow, order())
		term := v.Commitments[j].scalarMul(xPow)
		acc = acc.add(term)
	}

	rhs := v.Generator.scalarMul(share.Y.BigInt())
	return acc.equal(rhs)
}

// Split divides secret into n Feldman VSSS shares reconstructable by any
// threshold of them, returning the shares (indexed 1..n) and the public
// verifier. rng supplies the polynomial's random coefficients; callers
// should pass crypto/rand.Reader in production and a deterministic source
// only in tests.
func Split(secret []byte, threshold, shares int, rng io.Reader) ([]Share, FeldmanVerifier, error) {
	if threshold < 1 || shares < 1 || shares > 255 || threshold > shares {
		return nil, FeldmanVerifier{}, ErrInvalidThreshold
	}

	a0, err := secretBytesToScalar(secret)
	if err != nil {
		return nil, FeldmanVerifier{}, err
	}

	coeffs := make([]Scalar, threshold)
	coeffs[0] = a0
	for j := 1; j < threshold; j++ {
		c, err := randomScalar(rng)
		if err != nil {
			return nil, FeldmanVerifier{}, err
		}
		coeffs[j] = c
	}

	g := generatorG1()
	commitments := make([]G1Point, threshold)
	for j, c := range coeffs {
		commitments[j] = g.scalarMul(c.BigInt())
	}

	out := make([]Share, shares)
	for i := 1; i <= shares; i++ {
		x := ScalarFromUint64(uint64(i))
		out[i-1] = Share{X: x, Y: evalPolynomial(coeffs, x)}
	}

	return out, FeldmanVerifier{Generator: g, Commitments: commitments}, nil
}

// evalPolynomial computes f(x) = Σ coeffs[j]·x^j using Horner's method.
func evalPolynomial(coeffs []Scalar, x Scalar) Scalar {
	acc := coeffs[len(coeffs)-1]
	for j := len(coeffs) - 2; j >= 0; j-- {
		acc = acc.Mul(x).Add(coeffs[j])
	}
	return acc
}

// randomScalar draws a uniformly random field element from rng.
func randomScalar(rng io.Reader) (Scalar, error) {
	n, err := rand.Int(rng, order())
	if err != nil {
		return Scalar{}, err
	}
	return scalarFromBigInt(n), nil
}

// Combine reconstructs the secret scalar from at least threshold shares
// with distinct x-coordinates via Lagrange interpolation at x=0.
func Combine(shares []Share, threshold int) (Scalar, error) {
	if len(shares) < threshold {
		return Scalar{}, ErrInsufficientShares
	}

	use := shares[:threshold]

	seen := make(map[string]struct{}, len(use))
	for _, s := range use {
		key := string(s.X.Bytes()[:])
		if _, dup := seen[key]; dup {
			return Scalar{}, ErrDuplicateShares
		}
		seen[key] = struct{}{}
	}

	var secret Scalar
	for i, si := range use {
		num := ScalarFromUint64(1)
		den := ScalarFromUint64(1)
		for j, sj := range use {
			if i == j {
				continue
			}
			num = num.Mul(sj.X.negate())
			den = den.Mul(si.X.Sub(sj.X))
		}
		denInv, err := den.Inverse()
		if err != nil {
			return Scalar{}, ErrDuplicateShares
		}
		coeff := num.Mul(denInv)
		secret = secret.Add(si.Y.Mul(coeff))
	}

	return secret, nil
}
