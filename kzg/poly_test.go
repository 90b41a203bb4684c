package kzg

import (
	"math/rand"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/kzg4844/kzg/curve"
)

// randomPolynomial returns the coefficients of a random polynomial and its evaluation form over the bit-reversed domain.
func randomPolynomial(t *testing.T, rng *rand.Rand, d *Domain) ([]curve.Fr, Polynomial) {
	coefficients := randomFrs(rng, int(d.Cardinality))
	evaluations, err := d.FFT(coefficients)
	require.NoError(t, err)
	bitReverse(evaluations)

	return coefficients, evaluations
}

func TestBlobToPolynomial(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	blob := randomBlob(rng, testWidth)

	poly, err := blobToPolynomial(blob, testWidth)
	require.NoError(t, err)
	require.Len(t, poly, testWidth)
	for i := range poly {
		encoded := poly[i].BytesLE()
		assert.Equal(t, blob[i*BytesPerFieldElement:(i+1)*BytesPerFieldElement], encoded[:])
	}

	_, err = blobToPolynomial(blob[:len(blob)-1], testWidth)
	assert.True(t, errors.Is(err, ErrInvalidBlobLength))
	assert.True(t, errors.Is(err, ErrInput))

	copy(blob[5*BytesPerFieldElement:], modulusLE())
	_, err = blobToPolynomial(blob, testWidth)
	assert.True(t, errors.Is(err, ErrInvalidFieldElement))
	assert.Contains(t, err.Error(), "element 5")
}

func TestEvaluateAt(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	d, err := NewDomain(testWidth)
	require.NoError(t, err)

	coefficients, poly := randomPolynomial(t, rng, d)

	for i := 0; i < 10; i++ {
		z := randomFr(rng)
		y, err := d.EvaluateAt(poly, &z)
		require.NoError(t, err)
		assert.True(t, y.Equal(evaluateCoefficients(coefficients, &z)))
	}

	for i := range d.RootsBitReversed {
		y, err := d.EvaluateAt(poly, &d.RootsBitReversed[i])
		require.NoError(t, err)
		assert.True(t, y.Equal(&poly[i]), "domain point %d", i)
	}

	_, err = d.EvaluateAt(poly[:testWidth/2], &d.Generator)
	assert.Error(t, err)
}

func TestPolyLongDiv(t *testing.T) {
	// (x² + 3x + 2) / (x + 1) = x + 2
	dividend := make([]curve.Fr, 3)
	dividend[0].SetUint64(2)
	dividend[1].SetUint64(3)
	dividend[2].SetUint64(1)
	divisor := make([]curve.Fr, 2)
	divisor[0].SetUint64(1)
	divisor[1].SetUint64(1)

	quotient, err := polyLongDiv(dividend, divisor)
	require.NoError(t, err)
	require.Len(t, quotient, 2)
	assert.True(t, quotient[0].Equal(new(curve.Fr).SetUint64(2)))
	assert.True(t, quotient[1].IsOne())

	quotient, err = polyLongDiv(divisor, dividend)
	require.NoError(t, err)
	assert.Empty(t, quotient)

	_, err = polyLongDiv(dividend, make([]curve.Fr, 2))
	assert.Error(t, err)
}

func TestQuotient(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	_, handle := newTestHandle(t, testWidth, WithWorkerCount(1))
	settings := handle.settings
	setup := newTestSetup(t, testWidth)

	coefficients, poly := randomPolynomial(t, rng, settings.domain)

	randomZ := randomFr(rng)
	for name, z := range map[string]*curve.Fr{
		"random point": &randomZ,
		"domain point": &settings.domain.RootsBitReversed[3],
	} {
		t.Run(name, func(t *testing.T) {
			y, err := settings.domain.EvaluateAt(poly, z)
			require.NoError(t, err)

			// (p(x) - y) / (x - z) in coefficient form
			shifted := make([]curve.Fr, len(coefficients))
			copy(shifted, coefficients)
			shifted[0].Sub(&shifted[0], y)
			divisor := make([]curve.Fr, 2)
			divisor[0].Neg(z)
			divisor[1].SetOne()
			expected, err := polyLongDiv(shifted, divisor)
			require.NoError(t, err)

			q, err := settings.domain.quotient(poly, z, y)
			require.NoError(t, err)

			// the evaluation form must describe the same polynomial
			qCoefficients, err := settings.domain.IFFT(reverseCopy(q))
			require.NoError(t, err)
			for i := range expected {
				assert.True(t, qCoefficients[i].Equal(&expected[i]), "coefficient %d", i)
			}
			assert.True(t, qCoefficients[len(qCoefficients)-1].IsZero())

			commitment, err := settings.quotientCommitment(poly, z, y)
			require.NoError(t, err)
			assert.True(t, commitment.Equal(curve.LinCombG1(setup.G1[:len(expected)], expected)))

			polyCommitment, err := settings.commitPolynomial(poly)
			require.NoError(t, err)
			assert.True(t, settings.verifyOpening(polyCommitment, z, y, commitment))

			var wrongY curve.Fr
			wrongY.Add(y, new(curve.Fr).SetOne())
			assert.False(t, settings.verifyOpening(polyCommitment, z, &wrongY, commitment))
		})
	}
}

// reverseCopy returns the values in natural order for a bit-reversed input.
func reverseCopy(values Polynomial) []curve.Fr {
	out := make([]curve.Fr, len(values))
	copy(out, values)
	bitReverse(out)

	return out
}

func TestLinearCombination(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	polys := []Polynomial{randomFrs(rng, 4), randomFrs(rng, 4)}
	scalars := randomFrs(rng, 2)

	combined := linearCombination(polys, scalars)
	require.Len(t, combined, 4)
	for i := range combined {
		var a, b, sum curve.Fr
		a.Mul(&scalars[0], &polys[0][i])
		b.Mul(&scalars[1], &polys[1][i])
		assert.True(t, combined[i].Equal(sum.Add(&a, &b)))
	}

	assert.Nil(t, linearCombination(nil, nil))
}
