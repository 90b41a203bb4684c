package kzg

import (
	"github.com/iotaledger/kzg4844/kzg/curve"
)

const (
	// FieldElementsPerBlob is the number of field elements in a blob.
	FieldElementsPerBlob = 4096
	// BytesPerFieldElement is the size of an encoded field element.
	BytesPerFieldElement = curve.FrSize
	// BytesPerBlob is the size of a blob.
	BytesPerBlob = FieldElementsPerBlob * BytesPerFieldElement
	// BytesPerCommitment is the size of a compressed commitment.
	BytesPerCommitment = curve.G1CompressedSize
	// BytesPerProof is the size of a compressed proof.
	BytesPerProof = curve.G1CompressedSize

	// minG2Points is the number of G2 powers needed for verification ([1]₂ and [s]₂).
	minG2Points = 2
	// maxSetupPoints bounds the number of G1 and G2 powers a trusted setup may declare.
	maxSetupPoints = FieldElementsPerBlob

	// primitiveRootOfUnity generates the multiplicative group of the scalar field.
	primitiveRootOfUnity = 7

	// fiatShamirProtocolDomain separates the aggregation transcript from other protocols.
	fiatShamirProtocolDomain = "FSBLOBVERIFY_V1_"
)

// Commitment is a compressed G1 point committing to a blob.
type Commitment [BytesPerCommitment]byte

// Proof is a compressed G1 point proving the evaluation of one or more blobs.
type Proof [BytesPerProof]byte

// FieldElement is a little-endian encoded element of the scalar field.
type FieldElement [BytesPerFieldElement]byte

// CommitmentFromBytes copies b into a Commitment.
func CommitmentFromBytes(b []byte) (Commitment, error) {
	var c Commitment
	if len(b) != BytesPerCommitment {
		return c, inputError(ErrInvalidCommitmentEncoding, "expected %d bytes, got %d", BytesPerCommitment, len(b))
	}
	copy(c[:], b)

	return c, nil
}

// ProofFromBytes copies b into a Proof.
func ProofFromBytes(b []byte) (Proof, error) {
	var p Proof
	if len(b) != BytesPerProof {
		return p, inputError(ErrInvalidProofEncoding, "expected %d bytes, got %d", BytesPerProof, len(b))
	}
	copy(p[:], b)

	return p, nil
}

// FieldElementFromBytes copies b into a FieldElement and checks that it is canonical.
func FieldElementFromBytes(b []byte) (FieldElement, error) {
	var fe FieldElement
	if _, err := decodeFieldElement(b); err != nil {
		return fe, err
	}
	copy(fe[:], b)

	return fe, nil
}

func decodeFieldElement(b []byte) (*curve.Fr, error) {
	var f curve.Fr
	if err := f.SetBytesLE(b); err != nil {
		return nil, inputError(ErrInvalidFieldElement, "%s", err)
	}

	return &f, nil
}

func decodeCommitment(c Commitment) (*curve.G1Point, error) {
	var p curve.G1Point
	if err := p.SetCompressed(c[:]); err != nil {
		return nil, inputError(ErrInvalidCommitmentEncoding, "%s", err)
	}

	return &p, nil
}

func decodeProof(proof Proof) (*curve.G1Point, error) {
	var p curve.G1Point
	if err := p.SetCompressed(proof[:]); err != nil {
		return nil, inputError(ErrInvalidProofEncoding, "%s", err)
	}

	return &p, nil
}
