package kzg

import (
	"math/big"
	"math/bits"

	"github.com/cockroachdb/errors"

	"github.com/iotaledger/kzg4844/kzg/curve"
)

// maxDomainLog2 is the 2-adicity of the multiplicative group of the scalar field.
const maxDomainLog2 = 32

// Domain is the multiplicative subgroup of the N-th roots of unity the blob polynomials are evaluated on.
// Blob elements are ordered by the bit-reversal permutation of the natural order ω⁰, ω¹, ..., ωᴺ⁻¹.
type Domain struct {
	// Cardinality is the number of points N of the domain.
	Cardinality uint64
	// Generator is the primitive N-th root of unity ω.
	Generator curve.Fr
	// CardinalityInv is 1/N.
	CardinalityInv curve.Fr
	// Roots holds ω⁰ ... ωᴺ⁻¹ in natural order.
	Roots []curve.Fr
	// RootsBitReversed holds the roots in bit-reversed order.
	RootsBitReversed []curve.Fr

	rootsInv []curve.Fr
}

// NewDomain creates the domain of the given power of two cardinality.
func NewDomain(cardinality uint64) (*Domain, error) {
	if cardinality < 2 || !isPowerOfTwo(cardinality) {
		return nil, errors.Newf("domain size %d is not a power of two", cardinality)
	}
	if bits.TrailingZeros64(cardinality) > maxDomainLog2 {
		return nil, errors.Newf("domain size %d exceeds 2^%d", cardinality, maxDomainLog2)
	}

	// ω = g^((r-1)/N)
	exponent := new(big.Int).Sub(curve.Modulus(), big.NewInt(1))
	exponent.Div(exponent, new(big.Int).SetUint64(cardinality))
	generator := new(big.Int).Exp(big.NewInt(primitiveRootOfUnity), exponent, curve.Modulus())

	d := &Domain{
		Cardinality: cardinality,
	}
	d.Generator.SetBigInt(generator)
	d.CardinalityInv.SetUint64(cardinality)
	d.CardinalityInv.Inverse(&d.CardinalityInv)

	d.Roots = make([]curve.Fr, cardinality)
	d.Roots[0].SetOne()
	for i := uint64(1); i < cardinality; i++ {
		d.Roots[i].Mul(&d.Roots[i-1], &d.Generator)
	}

	// ω must have order exactly N
	var wrap curve.Fr
	wrap.Mul(&d.Roots[cardinality-1], &d.Generator)
	if !wrap.IsOne() || d.Roots[cardinality/2].IsOne() {
		return nil, errors.Newf("no primitive root of unity of order %d", cardinality)
	}

	d.rootsInv = make([]curve.Fr, cardinality)
	d.rootsInv[0].SetOne()
	for i := uint64(1); i < cardinality; i++ {
		d.rootsInv[i].Set(&d.Roots[cardinality-i])
	}

	d.RootsBitReversed = make([]curve.Fr, cardinality)
	copy(d.RootsBitReversed, d.Roots)
	bitReverse(d.RootsBitReversed)

	return d, nil
}

// findRootIndex returns the position of z in the bit-reversed domain.
func (d *Domain) findRootIndex(z *curve.Fr) (int, bool) {
	for i := range d.RootsBitReversed {
		if d.RootsBitReversed[i].Equal(z) {
			return i, true
		}
	}

	return -1, false
}

func isPowerOfTwo(v uint64) bool {
	return v != 0 && v&(v-1) == 0
}

// reverseBits reverses the lowest log2(order) bits of n.
func reverseBits(n, order uint64) uint64 {
	return bits.Reverse64(n) >> (64 - bits.TrailingZeros64(order))
}

// bitReverse rearranges the values in bit-reversed index order. len(values) must be a power of two.
func bitReverse[T any](values []T) {
	n := uint64(len(values))
	if n < 2 {
		return
	}
	if !isPowerOfTwo(n) {
		panic("bitReverse: length is not a power of two")
	}

	for i := uint64(0); i < n; i++ {
		if j := reverseBits(i, n); i < j {
			values[i], values[j] = values[j], values[i]
		}
	}
}
