package kzg

import (
	"github.com/cockroachdb/errors"

	"github.com/iotaledger/kzg4844/kzg/curve"
)

// aggregation is the random linear combination of committed blobs and the point it is opened at.
type aggregation struct {
	poly       Polynomial
	commitment *curve.G1Point
	z          *curve.Fr
	y          *curve.Fr
}

// aggregate combines the blobs and their commitment points with the powers of the Fiat-Shamir challenge r
// and evaluates the combined polynomial at the challenge z.
func (s *Settings) aggregate(blobs [][]byte, committed []committedBlob, points []curve.G1Point) (*aggregation, error) {
	commitments := make([]Commitment, len(committed))
	polys := make([]Polynomial, len(committed))
	for i := range committed {
		commitments[i] = committed[i].commitment
		polys[i] = committed[i].poly
	}

	digest, r := computeChallenge(s.Width(), blobs, commitments)
	rPowers := powers(r, len(committed))

	aggregateCommitment, err := linCombG1(s.workerPool, points, rPowers)
	if err != nil {
		return nil, err
	}

	agg := &aggregation{
		poly:       linearCombination(polys, rPowers),
		commitment: aggregateCommitment,
		z:          evaluationChallenge(digest, aggregateCommitment),
	}

	if agg.y, err = s.domain.EvaluateAt(agg.poly, agg.z); err != nil {
		return nil, err
	}

	return agg, nil
}

// ComputeAggregateKZGProof computes a single proof for all blobs. The blobs are bound to their
// commitments by a Fiat-Shamir transcript, so the proof only verifies for the same blobs in the same order.
func (h *Handle) ComputeAggregateKZGProof(blobs [][]byte) (Proof, error) {
	settings, release, err := h.acquire()
	if err != nil {
		return Proof{}, err
	}
	defer release()

	return settings.computeAggregateProof(blobs)
}

func (s *Settings) computeAggregateProof(blobs [][]byte) (Proof, error) {
	if len(blobs) == 0 {
		return Proof{}, inputError(ErrEmptyBlobList, "no blobs to prove")
	}

	committed, err := s.commitBlobs(blobs)
	if err != nil {
		return Proof{}, err
	}

	points := make([]curve.G1Point, len(committed))
	for i := range committed {
		point, err := decodeCommitment(committed[i].commitment)
		if err != nil {
			return Proof{}, errors.Wrapf(err, "blob %d", i)
		}
		points[i] = *point
	}

	agg, err := s.aggregate(blobs, committed, points)
	if err != nil {
		return Proof{}, err
	}

	proof, err := s.quotientCommitment(agg.poly, agg.z, agg.y)
	if err != nil {
		return Proof{}, err
	}

	return Proof(proof.Compress()), nil
}

// quotientCommitment commits to q(x) = (p(x) - y)/(x - z).
func (s *Settings) quotientCommitment(poly Polynomial, z, y *curve.Fr) (*curve.G1Point, error) {
	q, err := s.domain.quotient(poly, z, y)
	if err != nil {
		return nil, err
	}

	return s.commitPolynomial(q)
}
