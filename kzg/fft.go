package kzg

import (
	"github.com/cockroachdb/errors"

	"github.com/iotaledger/kzg4844/kzg/curve"
	"github.com/iotaledger/kzg4844/workerpool"
)

// FFT evaluates the polynomial with the given coefficients on the domain (natural order).
func (d *Domain) FFT(coefficients []curve.Fr) ([]curve.Fr, error) {
	return d.fftFr(coefficients, false)
}

// IFFT interpolates the coefficients of the polynomial from its evaluations on the domain (natural order).
func (d *Domain) IFFT(evaluations []curve.Fr) ([]curve.Fr, error) {
	return d.fftFr(evaluations, true)
}

func (d *Domain) fftFr(values []curve.Fr, inverse bool) ([]curve.Fr, error) {
	if uint64(len(values)) != d.Cardinality {
		return nil, errors.Newf("got %d values but the domain has %d points", len(values), d.Cardinality)
	}

	out := make([]curve.Fr, len(values))
	copy(out, values)
	bitReverse(out)

	roots := d.Roots
	if inverse {
		roots = d.rootsInv
	}

	n := len(out)
	var u, v curve.Fr
	for size := 2; size <= n; size <<= 1 {
		half := size >> 1
		step := n / size
		for start := 0; start < n; start += size {
			for j := 0; j < half; j++ {
				u.Set(&out[start+j])
				v.Mul(&out[start+j+half], &roots[j*step])
				out[start+j].Add(&u, &v)
				out[start+j+half].Sub(&u, &v)
			}
		}
	}

	if inverse {
		for i := range out {
			out[i].Mul(&out[i], &d.CardinalityInv)
		}
	}

	return out, nil
}

// fftG1 is the group variant of fftFr. The butterflies of every stage are independent and are
// spread over the worker pool if one is given.
func (d *Domain) fftG1(values []curve.G1Point, inverse bool, pool *workerpool.WorkerPool) ([]curve.G1Point, error) {
	if uint64(len(values)) != d.Cardinality {
		return nil, errors.Newf("got %d points but the domain has %d points", len(values), d.Cardinality)
	}

	out := make([]curve.G1Point, len(values))
	copy(out, values)
	bitReverse(out)

	roots := d.Roots
	if inverse {
		roots = d.rootsInv
	}

	n := len(out)
	for size := 2; size <= n; size <<= 1 {
		half := size >> 1
		step := n / size

		if err := parallelRange(pool, n/2, func(from, to int) {
			var u, v curve.G1Point
			for b := from; b < to; b++ {
				start := (b / half) * size
				j := b % half

				u.Set(&out[start+j])
				v.ScalarMult(&out[start+j+half], &roots[j*step])
				out[start+j].Add(&u, &v)
				out[start+j+half].Sub(&u, &v)
			}
		}); err != nil {
			return nil, err
		}
	}

	if inverse {
		if err := parallelRange(pool, n, func(from, to int) {
			for i := from; i < to; i++ {
				out[i].ScalarMult(&out[i], &d.CardinalityInv)
			}
		}); err != nil {
			return nil, err
		}
	}

	return out, nil
}
