package curve

import (
	"math/bits"

	bls "github.com/cloudflare/circl/ecc/bls12381"
	"github.com/cockroachdb/errors"
)

// G1CompressedSize is the size of a compressed G1 point.
const G1CompressedSize = bls.G1SizeCompressed

var (
	// ErrInvalidEncoding is returned if bytes do not decode to a point on the curve.
	ErrInvalidEncoding = errors.New("invalid point encoding")
	// ErrNotInSubgroup is returned if a decoded point is not in the prime-order subgroup.
	ErrNotInSubgroup = errors.New("point not in prime-order subgroup")
)

// G1Point is a point of the BLS12-381 G1 group.
// The zero value is not a valid point, use SetIdentity or one of the constructors.
type G1Point bls.G1

func (p *G1Point) g1() *bls.G1 {
	return (*bls.G1)(p)
}

// G1Generator returns the canonical generator of G1.
func G1Generator() *G1Point {
	return (*G1Point)(bls.G1Generator())
}

// G1Identity returns the point at infinity of G1.
func G1Identity() *G1Point {
	return new(G1Point).SetIdentity()
}

// SetIdentity sets p to the point at infinity.
func (p *G1Point) SetIdentity() *G1Point {
	p.g1().SetIdentity()

	return p
}

// Set copies q into p.
func (p *G1Point) Set(q *G1Point) *G1Point {
	*p = *q

	return p
}

// Add sets p = a + b.
func (p *G1Point) Add(a, b *G1Point) *G1Point {
	p.g1().Add(a.g1(), b.g1())

	return p
}

// Sub sets p = a - b. Neither operand is modified.
func (p *G1Point) Sub(a, b *G1Point) *G1Point {
	var negB G1Point
	negB.Neg(b)

	return p.Add(a, &negB)
}

// Neg sets p = -a.
func (p *G1Point) Neg(a *G1Point) *G1Point {
	*p = *a
	p.g1().Neg()

	return p
}

// ScalarMult sets p = k * a.
func (p *G1Point) ScalarMult(a *G1Point, k *Fr) *G1Point {
	var out bls.G1
	out.ScalarMult(k.scalar(), a.g1())
	*p = G1Point(out)

	return p
}

// IsIdentity returns true if p is the point at infinity.
func (p *G1Point) IsIdentity() bool {
	return p.g1().IsIdentity()
}

// Equal returns true if p and q are the same point.
func (p *G1Point) Equal(q *G1Point) bool {
	return p.g1().IsEqual(q.g1())
}

// Compress returns the 48-byte compressed encoding of p.
func (p *G1Point) Compress() (out [G1CompressedSize]byte) {
	copy(out[:], p.g1().BytesCompressed())

	return out
}

// String returns the hex representation of p.
func (p *G1Point) String() string {
	return p.g1().String()
}

// SetCompressed decodes a compressed G1 point and checks that it lies in the prime-order subgroup.
func (p *G1Point) SetCompressed(b []byte) error {
	if len(b) != G1CompressedSize {
		return errors.Wrapf(ErrInvalidEncoding, "expected %d bytes, got %d", G1CompressedSize, len(b))
	}

	var decoded bls.G1
	if err := decoded.SetBytes(b); err != nil {
		return errors.Wrap(ErrInvalidEncoding, err.Error())
	}
	if !decoded.IsOnG1() {
		return ErrNotInSubgroup
	}

	*p = G1Point(decoded)

	return nil
}

// naiveLinCombThreshold is the term count below which LinCombG1 uses one scalar multiplication per term.
const naiveLinCombThreshold = 16

// LinCombG1 returns Σ scalars[i]·points[i]. Zero scalars are skipped.
// Larger inputs are summed with the bucket method, processing scalars in windows of c bits.
func LinCombG1(points []G1Point, scalars []Fr) *G1Point {
	if len(points) != len(scalars) {
		panic("LinCombG1: points/scalars length mismatch")
	}

	if len(points) < naiveLinCombThreshold {
		return linCombNaive(points, scalars)
	}

	return linCombBuckets(points, scalars)
}

func linCombNaive(points []G1Point, scalars []Fr) *G1Point {
	out := G1Identity()
	var term G1Point
	for i := range points {
		if scalars[i].IsZero() {
			continue
		}

		term.ScalarMult(&points[i], &scalars[i])
		out.Add(out, &term)
	}

	return out
}

func linCombBuckets(points []G1Point, scalars []Fr) *G1Point {
	c := windowBits(len(points))

	encoded := make([][FrSize]byte, 0, len(scalars))
	active := make([]int, 0, len(scalars))
	for i := range scalars {
		if scalars[i].IsZero() {
			continue
		}
		encoded = append(encoded, scalars[i].BytesLE())
		active = append(active, i)
	}

	buckets := make([]G1Point, (1<<c)-1)
	var running, windowSum G1Point

	out := G1Identity()
	for offset := ((scalarBits - 1) / c) * c; offset >= 0; offset -= c {
		for b := 0; b < c; b++ {
			out.Add(out, out)
		}

		for j := range buckets {
			buckets[j].SetIdentity()
		}
		for k, i := range active {
			if digit := windowDigit(&encoded[k], offset, c); digit != 0 {
				buckets[digit-1].Add(&buckets[digit-1], &points[i])
			}
		}

		// Σ j·bucket[j] as a sum of suffix sums
		running.SetIdentity()
		windowSum.SetIdentity()
		for j := len(buckets) - 1; j >= 0; j-- {
			running.Add(&running, &buckets[j])
			windowSum.Add(&windowSum, &running)
		}

		out.Add(out, &windowSum)
	}

	return out
}

// scalarBits is the bit length of the scalar field order.
const scalarBits = 255

// windowBits picks the bucket window width for n terms.
func windowBits(n int) int {
	c := bits.Len(uint(n)) - 3
	switch {
	case c < 2:
		return 2
	case c > 16:
		return 16
	default:
		return c
	}
}

// windowDigit returns the width bits of the little-endian scalar le starting at bit offset.
func windowDigit(le *[FrSize]byte, offset, width int) int {
	digit := 0
	for b := 0; b < width; b++ {
		bit := offset + b
		if bit >= FrSize*8 {
			break
		}
		digit |= int(le[bit/8]>>(bit%8)&1) << b
	}

	return digit
}
