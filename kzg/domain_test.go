package kzg

import (
	"math/rand"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/kzg4844/kzg/curve"
)

func TestNewDomain(t *testing.T) {
	for _, n := range []uint64{2, 16, 256, FieldElementsPerBlob} {
		d, err := NewDomain(n)
		require.NoError(t, err)

		assert.Len(t, d.Roots, int(n))
		assert.True(t, d.Roots[0].IsOne())

		var nFr, prod curve.Fr
		nFr.SetUint64(n)
		assert.True(t, prod.Mul(&nFr, &d.CardinalityInv).IsOne())

		for i := range d.RootsBitReversed {
			assert.True(t, d.RootsBitReversed[i].Equal(&d.Roots[reverseBits(uint64(i), n)]), "n=%d i=%d", n, i)
		}
	}
}

func TestNewDomainInvalid(t *testing.T) {
	for _, n := range []uint64{0, 1, 3, 4095, 1 << 33} {
		_, err := NewDomain(n)
		assert.Error(t, err, "n=%d", n)
	}
}

func TestBitReverse(t *testing.T) {
	values := []int{0, 1, 2, 3, 4, 5, 6, 7}
	bitReverse(values)
	assert.Equal(t, []int{0, 4, 2, 6, 1, 5, 3, 7}, values)

	bitReverse(values)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, values)

	assert.Panics(t, func() { bitReverse(make([]int, 6)) })
}

func TestFFT(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	d, err := NewDomain(testWidth)
	require.NoError(t, err)

	coefficients := randomFrs(rng, testWidth)
	evaluations, err := d.FFT(coefficients)
	require.NoError(t, err)

	for i := range evaluations {
		assert.True(t, evaluations[i].Equal(evaluateCoefficients(coefficients, &d.Roots[i])), "root %d", i)
	}

	back, err := d.IFFT(evaluations)
	require.NoError(t, err)
	for i := range back {
		assert.True(t, back[i].Equal(&coefficients[i]))
	}

	_, err = d.FFT(coefficients[:testWidth-1])
	assert.Error(t, err)
}

func TestFFTG1(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	d, err := NewDomain(testWidth)
	require.NoError(t, err)

	scalars := randomFrs(rng, testWidth)
	points := make([]curve.G1Point, testWidth)
	for i := range points {
		points[i].ScalarMult(curve.G1Generator(), &scalars[i])
	}

	transformed, err := d.fftG1(points, false, nil)
	require.NoError(t, err)
	expected, err := d.FFT(scalars)
	require.NoError(t, err)
	for i := range transformed {
		assert.True(t, transformed[i].Equal(new(curve.G1Point).ScalarMult(curve.G1Generator(), &expected[i])), "index %d", i)
	}

	back, err := d.fftG1(transformed, true, nil)
	require.NoError(t, err)
	for i := range back {
		assert.True(t, back[i].Equal(&points[i]), "index %d", i)
	}
}

func TestErrorKinds(t *testing.T) {
	err := inputError(ErrInvalidFieldElement, "element %d", 3)
	assert.True(t, errors.Is(err, ErrInput))
	assert.True(t, errors.Is(err, ErrInvalidFieldElement))
	assert.False(t, errors.Is(err, ErrInvalidBlobLength))
	assert.False(t, errors.Is(err, ErrSetup))

	err = setupError(ErrInvalidPoint, "G1 point %d", 1)
	assert.True(t, errors.Is(err, ErrSetup))
	assert.False(t, errors.Is(err, ErrSubgroupCheckFailed))

	err = stateError(ErrUseAfterFree)
	assert.True(t, errors.Is(err, ErrState))
	assert.True(t, errors.Is(err, ErrUseAfterFree))
	assert.True(t, errors.Is(err, ErrNotLoaded))
	assert.False(t, errors.Is(stateError(ErrNotLoaded), ErrUseAfterFree))
}
