package kzg

import (
	"encoding/binary"
	"hash"

	"github.com/minio/sha256-simd"

	"github.com/iotaledger/kzg4844/kzg/curve"
)

const (
	// challengeTagR is appended to the transcript digest to derive the aggregation challenge r.
	challengeTagR = 0x00
	// challengeTagZ prefixes the transcript digest to derive the evaluation challenge z.
	challengeTagZ = 0x01
)

func writeUint64(h hash.Hash, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, _ = h.Write(buf[:])
}

// hashToField interprets the digest as a little-endian integer and reduces it modulo r.
func hashToField(digest []byte) *curve.Fr {
	return new(curve.Fr).SetBytesLEReduced(digest)
}

// computeChallenge returns the transcript digest of the blobs and their commitments and the
// aggregation challenge derived from it.
func computeChallenge(width uint64, blobs [][]byte, commitments []Commitment) ([sha256.Size]byte, *curve.Fr) {
	h := sha256.New()
	_, _ = h.Write([]byte(fiatShamirProtocolDomain))
	writeUint64(h, width)
	writeUint64(h, uint64(len(blobs)))
	for _, blob := range blobs {
		_, _ = h.Write(blob)
	}
	for i := range commitments {
		_, _ = h.Write(commitments[i][:])
	}

	var digest [sha256.Size]byte
	h.Sum(digest[:0])

	h.Reset()
	_, _ = h.Write(digest[:])
	_, _ = h.Write([]byte{challengeTagR})

	return digest, hashToField(h.Sum(nil))
}

// evaluationChallenge derives the point z the aggregated polynomial is opened at.
func evaluationChallenge(digest [sha256.Size]byte, aggregateCommitment *curve.G1Point) *curve.Fr {
	compressed := aggregateCommitment.Compress()

	h := sha256.New()
	_, _ = h.Write([]byte(fiatShamirProtocolDomain))
	_, _ = h.Write([]byte{challengeTagZ})
	_, _ = h.Write(digest[:])
	_, _ = h.Write(compressed[:])

	return hashToField(h.Sum(nil))
}

// powers returns x⁰ ... xⁿ⁻¹.
func powers(x *curve.Fr, n int) []curve.Fr {
	result := make([]curve.Fr, n)
	if n == 0 {
		return result
	}

	result[0].SetOne()
	for i := 1; i < n; i++ {
		result[i].Mul(&result[i-1], x)
	}

	return result
}
