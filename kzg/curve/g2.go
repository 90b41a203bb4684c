package curve

import (
	bls "github.com/cloudflare/circl/ecc/bls12381"
	"github.com/cockroachdb/errors"
)

// G2CompressedSize is the size of a compressed G2 point.
const G2CompressedSize = bls.G2SizeCompressed

// G2Point is a point of the BLS12-381 G2 group.
type G2Point bls.G2

func (p *G2Point) g2() *bls.G2 {
	return (*bls.G2)(p)
}

// G2Generator returns the canonical generator of G2.
func G2Generator() *G2Point {
	return (*G2Point)(bls.G2Generator())
}

// G2Identity returns the point at infinity of G2.
func G2Identity() *G2Point {
	p := new(G2Point)
	p.g2().SetIdentity()

	return p
}

// Set copies q into p.
func (p *G2Point) Set(q *G2Point) *G2Point {
	*p = *q

	return p
}

// Add sets p = a + b.
func (p *G2Point) Add(a, b *G2Point) *G2Point {
	p.g2().Add(a.g2(), b.g2())

	return p
}

// Sub sets p = a - b. Neither operand is modified.
func (p *G2Point) Sub(a, b *G2Point) *G2Point {
	negB := *b
	negB.g2().Neg()

	return p.Add(a, &negB)
}

// ScalarMult sets p = k * a.
func (p *G2Point) ScalarMult(a *G2Point, k *Fr) *G2Point {
	var out bls.G2
	out.ScalarMult(k.scalar(), a.g2())
	*p = G2Point(out)

	return p
}

// IsIdentity returns true if p is the point at infinity.
func (p *G2Point) IsIdentity() bool {
	return p.g2().IsIdentity()
}

// Equal returns true if p and q are the same point.
func (p *G2Point) Equal(q *G2Point) bool {
	return p.g2().IsEqual(q.g2())
}

// Compress returns the 96-byte compressed encoding of p.
func (p *G2Point) Compress() (out [G2CompressedSize]byte) {
	copy(out[:], p.g2().BytesCompressed())

	return out
}

// SetCompressed decodes a compressed G2 point and checks that it lies in the prime-order subgroup.
func (p *G2Point) SetCompressed(b []byte) error {
	if len(b) != G2CompressedSize {
		return errors.Wrapf(ErrInvalidEncoding, "expected %d bytes, got %d", G2CompressedSize, len(b))
	}

	var decoded bls.G2
	if err := decoded.SetBytes(b); err != nil {
		return errors.Wrap(ErrInvalidEncoding, err.Error())
	}
	if !decoded.IsOnG2() {
		return ErrNotInSubgroup
	}

	*p = G2Point(decoded)

	return nil
}
