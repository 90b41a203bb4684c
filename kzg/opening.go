package kzg

import (
	"github.com/cockroachdb/errors"
)

// ComputeKZGProof opens the polynomial of the blob at z. It returns the proof and the evaluation y = p(z).
func (h *Handle) ComputeKZGProof(blob []byte, z FieldElement) (Proof, FieldElement, error) {
	settings, release, err := h.acquire()
	if err != nil {
		return Proof{}, FieldElement{}, err
	}
	defer release()

	poly, err := blobToPolynomial(blob, settings.Width())
	if err != nil {
		return Proof{}, FieldElement{}, err
	}

	zFr, err := decodeFieldElement(z[:])
	if err != nil {
		return Proof{}, FieldElement{}, errors.Wrap(err, "z")
	}

	y, err := settings.domain.EvaluateAt(poly, zFr)
	if err != nil {
		return Proof{}, FieldElement{}, err
	}

	proof, err := settings.quotientCommitment(poly, zFr, y)
	if err != nil {
		return Proof{}, FieldElement{}, err
	}

	return Proof(proof.Compress()), FieldElement(y.BytesLE()), nil
}

// VerifyKZGProof checks that the proof shows that the polynomial committed to evaluates to y at z.
func (h *Handle) VerifyKZGProof(commitment Commitment, z, y FieldElement, proof Proof) (bool, error) {
	settings, release, err := h.acquire()
	if err != nil {
		return false, err
	}
	defer release()

	commitmentPoint, err := decodeCommitment(commitment)
	if err != nil {
		return false, err
	}
	zFr, err := decodeFieldElement(z[:])
	if err != nil {
		return false, errors.Wrap(err, "z")
	}
	yFr, err := decodeFieldElement(y[:])
	if err != nil {
		return false, errors.Wrap(err, "y")
	}
	proofPoint, err := decodeProof(proof)
	if err != nil {
		return false, err
	}

	return settings.verifyOpening(commitmentPoint, zFr, yFr, proofPoint), nil
}
