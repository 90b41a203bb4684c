package kzg

import (
	"github.com/cockroachdb/errors"
)

// Error kinds. Every error returned by this package is marked with exactly one of them,
// so callers can branch on the kind with errors.Is.
var (
	// ErrSetup is the kind of errors raised while loading a trusted setup.
	ErrSetup = errors.New("trusted setup error")
	// ErrState is the kind of errors raised by an invalid handle lifecycle.
	ErrState = errors.New("state error")
	// ErrInput is the kind of errors raised by malformed caller input.
	ErrInput = errors.New("input error")
)

// Setup errors.
var (
	// ErrFileNotFound is returned if the trusted setup file does not exist.
	ErrFileNotFound = errors.New("trusted setup file not found")
	// ErrIO is returned if the trusted setup could not be read.
	ErrIO = errors.New("trusted setup could not be read")
	// ErrInvalidFormat is returned if the trusted setup is malformed or inconsistent.
	ErrInvalidFormat = errors.New("invalid trusted setup format")
	// ErrInvalidPoint is returned if a trusted setup point does not decompress.
	ErrInvalidPoint = errors.New("invalid trusted setup point")
	// ErrSubgroupCheckFailed is returned if a trusted setup point is not in the prime-order subgroup.
	ErrSubgroupCheckFailed = errors.New("trusted setup point not in subgroup")
)

// State errors.
var (
	// ErrAlreadyLoaded is returned if a trusted setup is loaded while another one is live.
	ErrAlreadyLoaded = errors.New("trusted setup already loaded")
	// ErrNotLoaded is returned if no trusted setup is loaded.
	ErrNotLoaded = errors.New("trusted setup not loaded")
	// ErrUseAfterFree is returned if a freed handle is used. It also matches ErrNotLoaded.
	ErrUseAfterFree = errors.New("trusted setup handle was freed")
)

// Input errors.
var (
	// ErrInvalidBlobLength is returned if a blob does not have the expected size.
	ErrInvalidBlobLength = errors.New("invalid blob length")
	// ErrInvalidFieldElement is returned if a field element is not canonical.
	ErrInvalidFieldElement = errors.New("invalid field element")
	// ErrInvalidCommitmentEncoding is returned if a commitment does not decode to a G1 point.
	ErrInvalidCommitmentEncoding = errors.New("invalid commitment encoding")
	// ErrInvalidProofEncoding is returned if a proof does not decode to a G1 point.
	ErrInvalidProofEncoding = errors.New("invalid proof encoding")
	// ErrEmptyBlobList is returned if no blobs were given.
	ErrEmptyBlobList = errors.New("empty blob list")
	// ErrLengthMismatch is returned if the number of blobs and commitments differ.
	ErrLengthMismatch = errors.New("number of blobs and commitments differ")
)

func setupError(err error, format string, args ...interface{}) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrSetup)
}

func stateError(err error) error {
	if err == ErrUseAfterFree {
		return errors.Mark(errors.Mark(errors.WithStack(err), ErrNotLoaded), ErrState)
	}

	return errors.Mark(errors.WithStack(err), ErrState)
}

func inputError(err error, format string, args ...interface{}) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrInput)
}
