package kzg

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/iotaledger/kzg4844/kzg/curve"
)

// The text format of a trusted setup:
//
//	<number of G1 points>
//	<number of G2 points>
//	<compressed G1 point as hex> (one per line, [s⁰]₁ first)
//	<compressed G2 point as hex> (one per line, [s⁰]₂ first)
//
// Tokens may be separated by any whitespace.

// ParseTrustedSetup reads a trusted setup in the text format.
func ParseTrustedSetup(r io.Reader) (*TrustedSetup, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1024*1024)
	scanner.Split(bufio.ScanWords)

	token := 0
	next := func(what string) (string, error) {
		token++
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", setupError(ErrIO, "reading %s: %s", what, err)
			}

			return "", setupError(ErrInvalidFormat, "unexpected end of file reading %s", what)
		}

		return scanner.Text(), nil
	}

	readCount := func(what string) (int, error) {
		text, err := next(what)
		if err != nil {
			return 0, err
		}

		count, err := strconv.ParseUint(text, 10, 31)
		if err != nil {
			return 0, setupError(ErrInvalidFormat, "invalid %s %q", what, text)
		}
		if count > maxSetupPoints {
			return 0, setupError(ErrInvalidFormat, "%s %d exceeds %d", what, count, maxSetupPoints)
		}

		return int(count), nil
	}

	g1Count, err := readCount("number of G1 points")
	if err != nil {
		return nil, err
	}
	g2Count, err := readCount("number of G2 points")
	if err != nil {
		return nil, err
	}

	setup := &TrustedSetup{
		G1: make([]curve.G1Point, g1Count),
		G2: make([]curve.G2Point, g2Count),
	}

	for i := range setup.G1 {
		text, err := next(fmt.Sprintf("G1 point %d", i))
		if err != nil {
			return nil, err
		}

		raw, err := decodeHexToken(text, curve.G1CompressedSize)
		if err != nil {
			return nil, setupError(ErrInvalidFormat, "G1 point %d (token %d): %s", i, token, err)
		}
		if err := decodeG1(&setup.G1[i], raw); err != nil {
			return nil, errors.Wrapf(err, "G1 point %d", i)
		}
	}

	for i := range setup.G2 {
		text, err := next(fmt.Sprintf("G2 point %d", i))
		if err != nil {
			return nil, err
		}

		raw, err := decodeHexToken(text, curve.G2CompressedSize)
		if err != nil {
			return nil, setupError(ErrInvalidFormat, "G2 point %d (token %d): %s", i, token, err)
		}
		if err := decodeG2(&setup.G2[i], raw); err != nil {
			return nil, errors.Wrapf(err, "G2 point %d", i)
		}
	}

	if scanner.Scan() {
		return nil, setupError(ErrInvalidFormat, "unexpected trailing data %q", scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, setupError(ErrIO, "%s", err)
	}

	return setup, nil
}

func decodeHexToken(text string, size int) ([]byte, error) {
	if len(text) != 2*size {
		return nil, errors.Newf("expected %d hex characters, got %d", 2*size, len(text))
	}

	return hex.DecodeString(text)
}

func decodeG1(p *curve.G1Point, raw []byte) error {
	if err := p.SetCompressed(raw); err != nil {
		if errors.Is(err, curve.ErrNotInSubgroup) {
			return setupError(ErrSubgroupCheckFailed, "%s", err)
		}

		return setupError(ErrInvalidPoint, "%s", err)
	}

	return nil
}

func decodeG2(p *curve.G2Point, raw []byte) error {
	if err := p.SetCompressed(raw); err != nil {
		if errors.Is(err, curve.ErrNotInSubgroup) {
			return setupError(ErrSubgroupCheckFailed, "%s", err)
		}

		return setupError(ErrInvalidPoint, "%s", err)
	}

	return nil
}

// WriteTo writes the trusted setup in the text format.
func (ts *TrustedSetup) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64

	write := func(line string) error {
		n, err := bw.WriteString(line)
		written += int64(n)

		return err
	}

	if err := write(fmt.Sprintf("%d\n%d\n", len(ts.G1), len(ts.G2))); err != nil {
		return written, err
	}
	for i := range ts.G1 {
		compressed := ts.G1[i].Compress()
		if err := write(hex.EncodeToString(compressed[:]) + "\n"); err != nil {
			return written, err
		}
	}
	for i := range ts.G2 {
		compressed := ts.G2[i].Compress()
		if err := write(hex.EncodeToString(compressed[:]) + "\n"); err != nil {
			return written, err
		}
	}

	return written, bw.Flush()
}

// jsonTrustedSetup is the JSON layout of the consensus specifications.
type jsonTrustedSetup struct {
	SetupG1 []hexutil.Bytes `json:"setup_G1"`
	SetupG2 []hexutil.Bytes `json:"setup_G2"`
}

// ParseTrustedSetupJSON reads a trusted setup in the JSON layout {"setup_G1": ["0x..."], "setup_G2": ["0x..."]}.
func ParseTrustedSetupJSON(r io.Reader) (*TrustedSetup, error) {
	var raw jsonTrustedSetup
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, setupError(ErrInvalidFormat, "%s", err)
	}

	if len(raw.SetupG1) > maxSetupPoints || len(raw.SetupG2) > maxSetupPoints {
		return nil, setupError(ErrInvalidFormat, "setup declares %d G1 and %d G2 points, at most %d each are allowed", len(raw.SetupG1), len(raw.SetupG2), maxSetupPoints)
	}

	setup := &TrustedSetup{
		G1: make([]curve.G1Point, len(raw.SetupG1)),
		G2: make([]curve.G2Point, len(raw.SetupG2)),
	}
	for i := range raw.SetupG1 {
		if len(raw.SetupG1[i]) != curve.G1CompressedSize {
			return nil, setupError(ErrInvalidFormat, "G1 point %d has %d bytes, expected %d", i, len(raw.SetupG1[i]), curve.G1CompressedSize)
		}
		if err := decodeG1(&setup.G1[i], raw.SetupG1[i]); err != nil {
			return nil, errors.Wrapf(err, "G1 point %d", i)
		}
	}
	for i := range raw.SetupG2 {
		if len(raw.SetupG2[i]) != curve.G2CompressedSize {
			return nil, setupError(ErrInvalidFormat, "G2 point %d has %d bytes, expected %d", i, len(raw.SetupG2[i]), curve.G2CompressedSize)
		}
		if err := decodeG2(&setup.G2[i], raw.SetupG2[i]); err != nil {
			return nil, errors.Wrapf(err, "G2 point %d", i)
		}
	}

	return setup, nil
}

// MarshalJSON encodes the trusted setup in the JSON layout of the consensus specifications.
func (ts *TrustedSetup) MarshalJSON() ([]byte, error) {
	raw := jsonTrustedSetup{
		SetupG1: make([]hexutil.Bytes, len(ts.G1)),
		SetupG2: make([]hexutil.Bytes, len(ts.G2)),
	}
	for i := range ts.G1 {
		compressed := ts.G1[i].Compress()
		raw.SetupG1[i] = compressed[:]
	}
	for i := range ts.G2 {
		compressed := ts.G2[i].Compress()
		raw.SetupG2[i] = compressed[:]
	}

	return json.Marshal(raw)
}
