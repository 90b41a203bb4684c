package kzg

import (
	"github.com/cockroachdb/errors"

	"github.com/iotaledger/kzg4844/kzg/curve"
)

// VerifyAggregateKZGProof checks that the proof was computed for the blobs and that every commitment
// belongs to the blob at the same position. Malformed input is an error, a proof that does not verify is not.
func (h *Handle) VerifyAggregateKZGProof(blobs [][]byte, commitments []Commitment, proof Proof) (bool, error) {
	settings, release, err := h.acquire()
	if err != nil {
		return false, err
	}
	defer release()

	return settings.verifyAggregateProof(blobs, commitments, proof)
}

func (s *Settings) verifyAggregateProof(blobs [][]byte, commitments []Commitment, proof Proof) (bool, error) {
	if len(blobs) != len(commitments) {
		return false, inputError(ErrLengthMismatch, "%d blobs, %d commitments", len(blobs), len(commitments))
	}
	if len(blobs) == 0 {
		return false, inputError(ErrEmptyBlobList, "no blobs to verify")
	}

	proofPoint, err := decodeProof(proof)
	if err != nil {
		return false, err
	}

	points := make([]curve.G1Point, len(commitments))
	for i := range commitments {
		point, err := decodeCommitment(commitments[i])
		if err != nil {
			return false, errors.Wrapf(err, "commitment %d", i)
		}
		points[i] = *point
	}

	committed, err := s.commitBlobs(blobs)
	if err != nil {
		return false, err
	}
	for i := range committed {
		if committed[i].commitment != commitments[i] {
			s.LogDebugf("commitment %d does not match blob %d", i, i)

			return false, nil
		}
	}

	agg, err := s.aggregate(blobs, committed, points)
	if err != nil {
		return false, err
	}

	if !s.verifyOpening(agg.commitment, agg.z, agg.y, proofPoint) {
		s.LogDebug("aggregate proof does not verify")

		return false, nil
	}

	return true, nil
}

// verifyOpening checks that proof shows p(z) = y for the polynomial p committed to by commitment:
// e(C - [y]₁, [1]₂) = e(π, [s]₂ - [z]₂).
func (s *Settings) verifyOpening(commitment *curve.G1Point, z, y *curve.Fr, proof *curve.G1Point) bool {
	var yG1, commitmentMinusY curve.G1Point
	yG1.ScalarMult(&s.g1Gen, y)
	commitmentMinusY.Sub(commitment, &yG1)

	var zG2, sMinusZ curve.G2Point
	zG2.ScalarMult(&s.g2Gen, z)
	sMinusZ.Sub(&s.g2S, &zG2)

	return curve.PairingsVerify(&commitmentMinusY, &s.g2Gen, proof, &sMinusZ)
}
