package curve

import (
	bls "github.com/cloudflare/circl/ecc/bls12381"
)

// PairingsVerify checks that e(a1, a2) == e(b1, b2).
// A pairing with the identity on either side is the identity of Gt.
func PairingsVerify(a1 *G1Point, a2 *G2Point, b1 *G1Point, b2 *G2Point) bool {
	aTrivial := a1.IsIdentity() || a2.IsIdentity()
	bTrivial := b1.IsIdentity() || b2.IsIdentity()

	switch {
	case aTrivial && bTrivial:
		return true
	case aTrivial:
		return bls.Pair(b1.g1(), b2.g2()).IsIdentity()
	case bTrivial:
		return bls.Pair(a1.g1(), a2.g2()).IsIdentity()
	}

	a1a2 := bls.Pair(a1.g1(), a2.g2())
	a1a2.Inv(a1a2)

	b1b2 := bls.Pair(b1.g1(), b2.g2())
	a1a2.Mul(a1a2, b1b2)

	return a1a2.IsIdentity()
}
