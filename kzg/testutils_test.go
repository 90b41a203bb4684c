package kzg

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/kzg4844/kzg/curve"
	"github.com/iotaledger/kzg4844/logger"
)

// testWidth keeps the algebraic tests fast. The full blob width is covered by TestFullWidth.
const testWidth = 16

var testSeed = []byte("insecure seed for the kzg tests")

func newTestSetup(t testing.TB, width int) *TrustedSetup {
	setup, err := GenerateTestingSetup(testSeed, width, minG2Points)
	require.NoError(t, err)

	return setup
}

func newTestManager(width int, opts ...Option) *Manager {
	return NewManager(append([]Option{withWidth(uint64(width)), WithLogger(logger.NewNopLogger())}, opts...)...)
}

func newTestHandle(t testing.TB, width int, opts ...Option) (*Manager, *Handle) {
	manager := newTestManager(width, opts...)
	handle, err := manager.LoadTrustedSetupFromSetup(newTestSetup(t, width))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = manager.Free(handle)
	})

	return manager, handle
}

func randomFr(rng *rand.Rand) curve.Fr {
	var buf [BytesPerFieldElement]byte
	_, _ = rng.Read(buf[:])

	var f curve.Fr
	f.SetBytesLEReduced(buf[:])

	return f
}

func randomFrs(rng *rand.Rand, n int) []curve.Fr {
	values := make([]curve.Fr, n)
	for i := range values {
		values[i] = randomFr(rng)
	}

	return values
}

func randomBlob(rng *rand.Rand, width int) []byte {
	blob := make([]byte, 0, width*BytesPerFieldElement)
	for i := 0; i < width; i++ {
		f := randomFr(rng)
		encoded := f.BytesLE()
		blob = append(blob, encoded[:]...)
	}

	return blob
}

func randomBlobs(rng *rand.Rand, count int, width int) [][]byte {
	blobs := make([][]byte, count)
	for i := range blobs {
		blobs[i] = randomBlob(rng, width)
	}

	return blobs
}

// modulusLE is the little-endian encoding of the scalar field modulus, the smallest non-canonical element.
func modulusLE() []byte {
	be := curve.Modulus().Bytes()
	le := make([]byte, BytesPerFieldElement)
	for i := range be {
		le[i] = be[len(be)-1-i]
	}

	return le
}

func commitAll(t testing.TB, handle *Handle, blobs [][]byte) []Commitment {
	commitments := make([]Commitment, len(blobs))
	for i := range blobs {
		var err error
		commitments[i], err = handle.BlobToKZGCommitment(blobs[i])
		require.NoError(t, err)
	}

	return commitments
}
