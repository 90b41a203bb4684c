package curve

import (
	"bytes"
	"math/big"

	bls "github.com/cloudflare/circl/ecc/bls12381"
	"github.com/cockroachdb/errors"
)

// FrSize is the size of an encoded scalar field element.
const FrSize = 32

// ModulusStr is the order r of the BLS12-381 scalar field in decimal.
const ModulusStr = "52435875175126190479447740508185965837690552500527637822603658699938581184513"

var (
	// ErrNonCanonicalFr is returned if an encoded field element is not smaller than the modulus.
	ErrNonCanonicalFr = errors.New("field element is not canonical")
	// ErrWrongFrSize is returned if an encoded field element does not have FrSize bytes.
	ErrWrongFrSize = errors.New("wrong field element size")
)

var (
	modulus   = new(big.Int)
	modulusBE [FrSize]byte
)

func init() {
	if _, ok := modulus.SetString(ModulusStr, 10); !ok {
		panic("invalid scalar field modulus")
	}
	modulus.FillBytes(modulusBE[:])
}

// Modulus returns a copy of the scalar field order.
func Modulus() *big.Int {
	return new(big.Int).Set(modulus)
}

// Fr is an element of the BLS12-381 scalar field.
// The zero value is the field element 0.
type Fr bls.Scalar

func (f *Fr) scalar() *bls.Scalar {
	return (*bls.Scalar)(f)
}

// SetZero sets f to 0.
func (f *Fr) SetZero() *Fr {
	f.scalar().SetUint64(0)

	return f
}

// SetOne sets f to 1.
func (f *Fr) SetOne() *Fr {
	f.scalar().SetOne()

	return f
}

// SetUint64 sets f to v.
func (f *Fr) SetUint64(v uint64) *Fr {
	f.scalar().SetUint64(v)

	return f
}

// Set copies v into f.
func (f *Fr) Set(v *Fr) *Fr {
	f.scalar().Set(v.scalar())

	return f
}

// SetBigInt sets f to v mod r.
func (f *Fr) SetBigInt(v *big.Int) *Fr {
	reduced := new(big.Int).Mod(v, modulus)

	var be [FrSize]byte
	reduced.FillBytes(be[:])
	f.scalar().SetBytes(be[:])

	return f
}

// BigInt returns the canonical integer representation of f.
func (f *Fr) BigInt() *big.Int {
	be, err := f.scalar().MarshalBinary()
	if err != nil {
		panic(err)
	}

	return new(big.Int).SetBytes(be)
}

// SetBytesLE decodes a little-endian encoded field element.
// Values that are not smaller than the modulus are rejected, never reduced.
func (f *Fr) SetBytesLE(b []byte) error {
	if len(b) != FrSize {
		return errors.Wrapf(ErrWrongFrSize, "expected %d bytes, got %d", FrSize, len(b))
	}

	var be [FrSize]byte
	for i := range b {
		be[FrSize-1-i] = b[i]
	}

	if bytes.Compare(be[:], modulusBE[:]) >= 0 {
		return ErrNonCanonicalFr
	}

	f.scalar().SetBytes(be[:])

	return nil
}

// SetBytesLEReduced interprets b as a little-endian integer and reduces it modulo r.
func (f *Fr) SetBytesLEReduced(b []byte) *Fr {
	be := make([]byte, len(b))
	for i := range b {
		be[len(b)-1-i] = b[i]
	}

	return f.SetBigInt(new(big.Int).SetBytes(be))
}

// BytesLE returns the canonical little-endian encoding of f.
func (f *Fr) BytesLE() (out [FrSize]byte) {
	be, err := f.scalar().MarshalBinary()
	if err != nil {
		panic(err)
	}

	// MarshalBinary is big-endian
	for i := range be {
		out[len(be)-1-i] = be[i]
	}

	return out
}

// Add sets f = a + b.
func (f *Fr) Add(a, b *Fr) *Fr {
	f.scalar().Add(a.scalar(), b.scalar())

	return f
}

// Sub sets f = a - b.
func (f *Fr) Sub(a, b *Fr) *Fr {
	f.scalar().Sub(a.scalar(), b.scalar())

	return f
}

// Mul sets f = a * b.
func (f *Fr) Mul(a, b *Fr) *Fr {
	f.scalar().Mul(a.scalar(), b.scalar())

	return f
}

// Square sets f = a².
func (f *Fr) Square(a *Fr) *Fr {
	f.scalar().Mul(a.scalar(), a.scalar())

	return f
}

// Inverse sets f = 1/a. The inverse of 0 is 0.
func (f *Fr) Inverse(a *Fr) *Fr {
	f.scalar().Inv(a.scalar())

	return f
}

// Div sets f = a / b.
func (f *Fr) Div(a, b *Fr) *Fr {
	var bInv Fr
	bInv.Inverse(b)

	return f.Mul(a, &bInv)
}

// Neg sets f = -a.
func (f *Fr) Neg(a *Fr) *Fr {
	var zero Fr

	return f.Sub(zero.SetZero(), a)
}

// Exp sets f = base^e for a non-negative exponent.
func (f *Fr) Exp(base *Fr, e *big.Int) *Fr {
	var acc, b Fr
	acc.SetOne()
	b.Set(base)

	for i := e.BitLen() - 1; i >= 0; i-- {
		acc.Square(&acc)
		if e.Bit(i) == 1 {
			acc.Mul(&acc, &b)
		}
	}

	return f.Set(&acc)
}

// IsZero returns true if f is 0.
func (f *Fr) IsZero() bool {
	return f.scalar().IsZero() == 1
}

// IsOne returns true if f is 1.
func (f *Fr) IsOne() bool {
	var one Fr

	return f.Equal(one.SetOne())
}

// Equal returns true if f and v represent the same field element.
func (f *Fr) Equal(v *Fr) bool {
	return f.scalar().IsEqual(v.scalar()) == 1
}

// String returns the decimal representation of f.
func (f *Fr) String() string {
	return f.BigInt().Text(10)
}

// BatchInverse sets out[i] = 1/in[i] using a single field inversion.
// Zero entries are left as zero. in and out may be the same slice.
func BatchInverse(out, in []Fr) {
	if len(out) != len(in) {
		panic("BatchInverse: length mismatch")
	}

	prefix := make([]Fr, len(in))
	var acc Fr
	acc.SetOne()
	for i := range in {
		prefix[i].Set(&acc)
		if !in[i].IsZero() {
			acc.Mul(&acc, &in[i])
		}
	}

	acc.Inverse(&acc)

	var tmp Fr
	for i := len(in) - 1; i >= 0; i-- {
		if in[i].IsZero() {
			out[i].SetZero()
			continue
		}

		tmp.Mul(&acc, &prefix[i])
		acc.Mul(&acc, &in[i])
		out[i].Set(&tmp)
	}
}
