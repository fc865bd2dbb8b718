package vsss

import (
	"encoding/base64"
	"encoding/json"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"gopkg.in/yaml.v3"
)

// G1Point is a Feldman commitment: a point on the BLS12-381 G1 curve,
// always handled in its compressed canonical form.
type G1Point struct {
	p bls12381.G1Affine
}

// generatorG1 returns the canonical BLS12-381 G1 generator.
func generatorG1() G1Point {
	_, _, g1, _ := bls12381.Generators()
	return G1Point{p: g1}
}

// scalarMul returns scalar*g.
func (g G1Point) scalarMul(scalar *big.Int) G1Point {
	var jac bls12381.G1Jac
	jac.FromAffine(&g.p)
	jac.ScalarMultiplication(&jac, scalar)
	var aff bls12381.G1Affine
	aff.FromJacobian(&jac)
	return G1Point{p: aff}
}

// add returns g + o.
func (g G1Point) add(o G1Point) G1Point {
	var jg, jo, jr bls12381.G1Jac
	jg.FromAffine(&g.p)
	jo.FromAffine(&o.p)
	jr.Add(&jg, &jo)
	var aff bls12381.G1Affine
	aff.FromJacobian(&jr)
	return G1Point{p: aff}
}

// equal reports whether g and o encode the same point.
func (g G1Point) equal(o G1Point) bool {
	return g.p.Equal(&o.p)
}

// Bytes returns the compressed canonical encoding of g.
func (g G1Point) Bytes() []byte {
	b := g.p.Bytes()
	return b[:]
}

// G1PointFromBytes parses a compressed canonical G1 encoding.
func G1PointFromBytes(b []byte) (G1Point, error) {
	var aff bls12381.G1Affine
	if _, err := aff.SetBytes(b); err != nil {
		return G1Point{}, ErrMalformedShare
	}
	return G1Point{p: aff}, nil
}

// MarshalYAML serializes the point as base64 of its compressed encoding, so
// a Layer document's verifier round-trips through a human-readable file.
func (g G1Point) MarshalYAML() (interface{}, error) {
	return base64.StdEncoding.EncodeToString(g.Bytes()), nil
}

// UnmarshalYAML parses a base64-encoded compressed G1 point.
func (g *G1Point) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return ErrMalformedShare
	}
	pt, err := G1PointFromBytes(raw)
	if err != nil {
		return err
	}
	*g = pt
	return nil
}

// MarshalJSON serializes the point as base64 of its compressed encoding,
// the same wire form as MarshalYAML, so a verifier served over the HTTP
// API round-trips for non-Go clients.
func (g G1Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(base64.StdEncoding.EncodeToString(g.Bytes()))
}

// UnmarshalJSON parses a base64-encoded compressed G1 point.
func (g *G1Point) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return ErrMalformedShare
	}
	pt, err := G1PointFromBytes(raw)
	if err != nil {
		return err
	}
	*g = pt
	return nil
}
