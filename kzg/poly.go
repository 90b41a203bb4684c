package kzg

import (
	"github.com/cockroachdb/errors"

	"github.com/iotaledger/kzg4844/kzg/curve"
)

// Polynomial is a polynomial in evaluation form over the bit-reversed domain.
type Polynomial []curve.Fr

// blobToPolynomial decodes the field elements of a blob. Non-canonical elements are rejected.
func blobToPolynomial(blob []byte, width uint64) (Polynomial, error) {
	if uint64(len(blob)) != width*BytesPerFieldElement {
		return nil, inputError(ErrInvalidBlobLength, "expected %d bytes, got %d", width*BytesPerFieldElement, len(blob))
	}

	poly := make(Polynomial, width)
	for i := range poly {
		if err := poly[i].SetBytesLE(blob[i*BytesPerFieldElement : (i+1)*BytesPerFieldElement]); err != nil {
			return nil, inputError(ErrInvalidFieldElement, "element %d: %s", i, err)
		}
	}

	return poly, nil
}

// EvaluateAt evaluates the polynomial at z using the barycentric formula
//
//	p(z) = (zᴺ - 1)/N · Σ pᵢ·ωᵢ/(z - ωᵢ)
//
// If z is a point of the domain the stored evaluation is returned.
func (d *Domain) EvaluateAt(poly Polynomial, z *curve.Fr) (*curve.Fr, error) {
	if uint64(len(poly)) != d.Cardinality {
		return nil, errors.Newf("polynomial has %d evaluations but the domain has %d points", len(poly), d.Cardinality)
	}

	if m, found := d.findRootIndex(z); found {
		return new(curve.Fr).Set(&poly[m]), nil
	}

	denominators := make([]curve.Fr, len(poly))
	for i := range denominators {
		denominators[i].Sub(z, &d.RootsBitReversed[i])
	}
	curve.BatchInverse(denominators, denominators)

	var sum, term curve.Fr
	for i := range poly {
		term.Mul(&poly[i], &d.RootsBitReversed[i])
		term.Mul(&term, &denominators[i])
		sum.Add(&sum, &term)
	}

	// zᴺ by repeated squaring, N is a power of two
	var zPow, one curve.Fr
	zPow.Set(z)
	for n := d.Cardinality; n > 1; n >>= 1 {
		zPow.Square(&zPow)
	}
	zPow.Sub(&zPow, one.SetOne())

	result := new(curve.Fr).Mul(&sum, &zPow)

	return result.Mul(result, &d.CardinalityInv), nil
}

// quotient returns the evaluation form of q(x) = (p(x) - y)/(x - z).
// For the domain point ωₘ = z the value is qₘ = Σ_{i≠m} (pᵢ - y)·ωᵢ / (z·(z - ωᵢ)).
func (d *Domain) quotient(poly Polynomial, z, y *curve.Fr) (Polynomial, error) {
	if uint64(len(poly)) != d.Cardinality {
		return nil, errors.Newf("polynomial has %d evaluations but the domain has %d points", len(poly), d.Cardinality)
	}

	m, inDomain := d.findRootIndex(z)

	q := make(Polynomial, len(poly))
	for i := range q {
		if inDomain && i == m {
			continue
		}
		q[i].Sub(&d.RootsBitReversed[i], z)
	}
	curve.BatchInverse(q, q)

	var numerator curve.Fr
	for i := range q {
		if inDomain && i == m {
			continue
		}
		numerator.Sub(&poly[i], y)
		q[i].Mul(&q[i], &numerator)
	}

	if inDomain {
		// (pᵢ - y)·ωᵢ / (z·(z - ωᵢ)) = -qᵢ·ωᵢ / z
		var sum, term, zInv curve.Fr
		for i := range q {
			if i == m {
				continue
			}
			term.Mul(&q[i], &d.RootsBitReversed[i])
			sum.Add(&sum, &term)
		}
		zInv.Inverse(z)
		sum.Mul(&sum, &zInv)
		q[m].Neg(&sum)
	}

	return q, nil
}

// linearCombination returns Σ scalars[i]·polys[i].
func linearCombination(polys []Polynomial, scalars []curve.Fr) Polynomial {
	if len(polys) == 0 {
		return nil
	}

	result := make(Polynomial, len(polys[0]))
	var term curve.Fr
	for j := range polys {
		for i := range result {
			term.Mul(&scalars[j], &polys[j][i])
			result[i].Add(&result[i], &term)
		}
	}

	return result
}

// evaluateCoefficients evaluates a polynomial in coefficient form at x using Horner's rule.
func evaluateCoefficients(coefficients []curve.Fr, x *curve.Fr) *curve.Fr {
	result := new(curve.Fr).SetZero()
	for i := len(coefficients) - 1; i >= 0; i-- {
		result.Mul(result, x)
		result.Add(result, &coefficients[i])
	}

	return result
}

// polyLongDiv divides the dividend by the divisor, both in coefficient form (lowest degree first),
// and returns the quotient. The remainder is discarded.
func polyLongDiv(dividend []curve.Fr, divisor []curve.Fr) ([]curve.Fr, error) {
	if len(divisor) == 0 || divisor[len(divisor)-1].IsZero() {
		return nil, errors.New("divisor has no leading coefficient")
	}
	if len(dividend) < len(divisor) {
		return []curve.Fr{}, nil
	}

	remainder := make([]curve.Fr, len(dividend))
	copy(remainder, dividend)

	quotient := make([]curve.Fr, len(dividend)-len(divisor)+1)
	var leadInv, term curve.Fr
	leadInv.Inverse(&divisor[len(divisor)-1])

	for pos := len(quotient) - 1; pos >= 0; pos-- {
		quotient[pos].Mul(&remainder[pos+len(divisor)-1], &leadInv)
		for i := range divisor {
			term.Mul(&quotient[pos], &divisor[i])
			remainder[pos+i].Sub(&remainder[pos+i], &term)
		}
	}

	return quotient, nil
}
