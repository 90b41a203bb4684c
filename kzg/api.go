package kzg

import (
	"sync"
)

var (
	defaultManagerOnce sync.Once
	defaultManager     *Manager
)

// DefaultManager returns the process-wide Manager used by the package level functions.
func DefaultManager() *Manager {
	defaultManagerOnce.Do(func() {
		defaultManager = NewManager()
	})

	return defaultManager
}

// LoadTrustedSetup loads the process-wide trusted setup from the file at path.
func LoadTrustedSetup(path string) (*Handle, error) {
	return DefaultManager().LoadTrustedSetup(path)
}

// FreeTrustedSetup frees the process-wide trusted setup.
func FreeTrustedSetup(handle *Handle) error {
	return DefaultManager().Free(handle)
}

// BlobToKZGCommitment computes the commitment of the blob.
func BlobToKZGCommitment(blob []byte, handle *Handle) (Commitment, error) {
	return handle.BlobToKZGCommitment(blob)
}

// ComputeAggregateKZGProof computes the aggregate proof of the blobs.
func ComputeAggregateKZGProof(blobs [][]byte, handle *Handle) (Proof, error) {
	return handle.ComputeAggregateKZGProof(blobs)
}

// VerifyAggregateKZGProof verifies the aggregate proof of the blobs and their commitments.
func VerifyAggregateKZGProof(blobs [][]byte, commitments []Commitment, proof Proof, handle *Handle) (bool, error) {
	return handle.VerifyAggregateKZGProof(blobs, commitments, proof)
}

// ComputeKZGProof opens the blob's polynomial at z.
func ComputeKZGProof(blob []byte, z FieldElement, handle *Handle) (Proof, FieldElement, error) {
	return handle.ComputeKZGProof(blob, z)
}

// VerifyKZGProof verifies the opening of a committed polynomial at z.
func VerifyKZGProof(commitment Commitment, z, y FieldElement, proof Proof, handle *Handle) (bool, error) {
	return handle.VerifyKZGProof(commitment, z, y, proof)
}
