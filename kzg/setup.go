package kzg

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/blake2b"

	"github.com/iotaledger/kzg4844/kzg/curve"
)

// TrustedSetup holds the powers of the secret s on both groups as published by a setup ceremony.
// [x]₁ means a projection of scalar x to the G1 curve. [x]₁ = xG, where G is the generating element.
// [x]₂ means a projection of scalar x to the G2 curve. [x]₂ = xH, where H is the generating element.
type TrustedSetup struct {
	// G1 holds [s⁰]₁ ... [sⁿ⁻¹]₁ in monomial order.
	G1 []curve.G1Point
	// G2 holds [s⁰]₂ ... [sᵐ⁻¹]₂.
	G2 []curve.G2Point
}

// GenerateTestingSetup derives a trusted setup with g1Count and g2Count powers from a known seed.
// The secret is known to everyone who knows the seed: never use the result outside of tests.
func GenerateTestingSetup(seed []byte, g1Count, g2Count int) (*TrustedSetup, error) {
	if g1Count < 1 || g2Count < minG2Points || g1Count > maxSetupPoints || g2Count > maxSetupPoints {
		return nil, errors.Newf("invalid number of powers: %d G1, %d G2", g1Count, g2Count)
	}

	h := blake2b.Sum256(seed)
	var secret curve.Fr
	secret.SetBytesLEReduced(h[:])
	if secret.IsZero() {
		return nil, errors.New("seed derives the zero secret")
	}

	count := g1Count
	if g2Count > count {
		count = g2Count
	}

	powers := make([]curve.Fr, count)
	powers[0].SetOne()
	for i := 1; i < count; i++ {
		powers[i].Mul(&powers[i-1], &secret)
	}
	secret.SetZero()

	setup := &TrustedSetup{
		G1: make([]curve.G1Point, g1Count),
		G2: make([]curve.G2Point, g2Count),
	}
	for i := range setup.G1 {
		setup.G1[i].ScalarMult(curve.G1Generator(), &powers[i])
	}
	for i := range setup.G2 {
		setup.G2[i].ScalarMult(curve.G2Generator(), &powers[i])
	}

	return setup, nil
}

// check verifies that both groups hold powers of the same secret: e([s]₁, [1]₂) = e([1]₁, [s]₂).
func (ts *TrustedSetup) check() error {
	if len(ts.G1) < 2 || len(ts.G2) < minG2Points {
		return setupError(ErrInvalidFormat, "setup needs at least 2 G1 and %d G2 points, got %d and %d", minG2Points, len(ts.G1), len(ts.G2))
	}

	if !curve.PairingsVerify(&ts.G1[1], &ts.G2[0], &ts.G1[0], &ts.G2[1]) {
		return setupError(ErrInvalidFormat, "G1 and G2 powers are inconsistent")
	}

	return nil
}
