package kzg

import (
	"github.com/cockroachdb/errors"

	"github.com/iotaledger/kzg4844/kzg/curve"
)

// BlobToKZGCommitment computes the commitment to the polynomial whose evaluations over the domain are the blob.
func (h *Handle) BlobToKZGCommitment(blob []byte) (Commitment, error) {
	settings, release, err := h.acquire()
	if err != nil {
		return Commitment{}, err
	}
	defer release()

	commitment, _, err := settings.blobToCommitment(blob)

	return commitment, err
}

// blobToCommitment returns the commitment of the blob and its decoded polynomial.
// The polynomial is nil if the commitment was served from the cache.
func (s *Settings) blobToCommitment(blob []byte) (Commitment, Polynomial, error) {
	if s.cache != nil && uint64(len(blob)) == s.Width()*BytesPerFieldElement {
		if commitment, ok := s.cache.get(blob); ok {
			return commitment, nil, nil
		}
	}

	poly, err := blobToPolynomial(blob, s.Width())
	if err != nil {
		return Commitment{}, nil, err
	}

	point, err := s.commitPolynomial(poly)
	if err != nil {
		return Commitment{}, nil, err
	}

	commitment := Commitment(point.Compress())
	if s.cache != nil {
		s.cache.set(blob, commitment)
	}

	return commitment, poly, nil
}

// commitPolynomial returns Σ pᵢ·[Lᵢ(s)]₁.
func (s *Settings) commitPolynomial(poly Polynomial) (*curve.G1Point, error) {
	return linCombG1(s.workerPool, s.g1Lagrange, poly)
}

// committedBlob is a decoded blob together with its commitment.
type committedBlob struct {
	poly       Polynomial
	commitment Commitment
}

// commitBlobs decodes and commits all blobs.
func (s *Settings) commitBlobs(blobs [][]byte) ([]committedBlob, error) {
	committed := make([]committedBlob, len(blobs))
	for i, blob := range blobs {
		commitment, poly, err := s.blobToCommitment(blob)
		if err != nil {
			return nil, errors.Wrapf(err, "blob %d", i)
		}
		if poly == nil {
			// cache hit, the blob was validated when it was cached
			if poly, err = blobToPolynomial(blob, s.Width()); err != nil {
				return nil, errors.Wrapf(err, "blob %d", i)
			}
		}

		committed[i] = committedBlob{poly: poly, commitment: commitment}
	}

	return committed, nil
}
