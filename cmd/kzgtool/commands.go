package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/term"

	"github.com/iotaledger/kzg4844/kzg"
)

const minSeed = 20

func runSetup(args []string) error {
	t, err := newTool("setup")
	if err != nil {
		return err
	}
	output := t.flagSet.StringP("output", "o", "trusted_setup.txt", "the file the trusted setup is written to (.json for the JSON layout)")
	g1Count := t.flagSet.Int("g1", kzg.FieldElementsPerBlob, "the number of G1 powers")
	g2Count := t.flagSet.Int("g2", 65, "the number of G2 powers")
	seedFlag := t.flagSet.String("seed", "", "the seed the secret is derived from (prompted if empty)")
	if err := t.parse(args); err != nil {
		return err
	}

	seed := []byte(*seedFlag)
	if len(seed) == 0 {
		if seed, err = readSeed(); err != nil {
			return err
		}
	}
	if len(seed) < minSeed {
		return errors.Newf("seed must have at least %d symbols", minSeed)
	}

	t.log.Infof("generating insecure trusted setup with %d G1 and %d G2 powers", *g1Count, *g2Count)
	setup, err := kzg.GenerateTestingSetup(seed, *g1Count, *g2Count)
	// destroy seed
	for i := range seed {
		seed[i] = 0
	}
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if isJSON(*output) {
		encoded, err := json.Marshal(setup)
		if err != nil {
			return err
		}
		buf.Write(encoded)
	} else if _, err := setup.WriteTo(&buf); err != nil {
		return err
	}

	if err := os.WriteFile(*output, buf.Bytes(), 0o600); err != nil {
		return errors.Wrapf(err, "writing trusted setup to %s failed", *output)
	}
	t.log.Infof("trusted setup written to %s", *output)

	// read it back
	var parseErr error
	if isJSON(*output) {
		_, parseErr = kzg.ParseTrustedSetupJSON(bytes.NewReader(buf.Bytes()))
	} else {
		_, parseErr = kzg.ParseTrustedSetup(bytes.NewReader(buf.Bytes()))
	}
	if parseErr != nil {
		return errors.Wrapf(parseErr, "reading trusted setup back from %s failed", *output)
	}
	t.log.Info("reading trusted setup back: OK")

	return nil
}

func readSeed() ([]byte, error) {
	for {
		fmt.Fprintf(os.Stderr, "please enter seed >= %d symbols and press ENTER (CTRL-C to exit) > ", minSeed)
		seed, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, errors.Wrap(err, "reading seed failed")
		}
		if len(seed) >= minSeed {
			return seed, nil
		}
		fmt.Fprintln(os.Stderr, "error: seed too short")
	}
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func runCommit(args []string) error {
	t, err := newTool("commit")
	if err != nil {
		return err
	}
	if err := t.parse(args); err != nil {
		return err
	}

	blobs, err := readBlobs(t.flagSet.Args())
	if err != nil {
		return err
	}

	handle, free, err := t.loadTrustedSetup()
	if err != nil {
		return err
	}
	defer free()

	for i, blob := range blobs {
		commitment, err := handle.BlobToKZGCommitment(blob)
		if err != nil {
			return errors.Wrapf(err, "committing to %s failed", t.flagSet.Arg(i))
		}
		fmt.Println(hexutil.Encode(commitment[:]))
	}

	return nil
}

func runProve(args []string) error {
	t, err := newTool("prove")
	if err != nil {
		return err
	}
	if err := t.parse(args); err != nil {
		return err
	}

	blobs, err := readBlobs(t.flagSet.Args())
	if err != nil {
		return err
	}

	handle, free, err := t.loadTrustedSetup()
	if err != nil {
		return err
	}
	defer free()

	proof, err := handle.ComputeAggregateKZGProof(blobs)
	if err != nil {
		return err
	}
	fmt.Println(hexutil.Encode(proof[:]))

	return nil
}

func runVerify(args []string) error {
	t, err := newTool("verify")
	if err != nil {
		return err
	}
	proofHex := t.flagSet.String("proof", "", "the hex encoded aggregate proof")
	commitmentsHex := t.flagSet.StringSlice("commitments", nil, "the hex encoded commitments, in the order of the blob files")
	if err := t.parse(args); err != nil {
		return err
	}

	blobs, err := readBlobs(t.flagSet.Args())
	if err != nil {
		return err
	}

	rawProof, err := hexutil.Decode(*proofHex)
	if err != nil {
		return errors.Wrap(err, "invalid proof")
	}
	proof, err := kzg.ProofFromBytes(rawProof)
	if err != nil {
		return err
	}

	commitments := make([]kzg.Commitment, len(*commitmentsHex))
	for i, text := range *commitmentsHex {
		raw, err := hexutil.Decode(text)
		if err != nil {
			return errors.Wrapf(err, "invalid commitment %d", i)
		}
		if commitments[i], err = kzg.CommitmentFromBytes(raw); err != nil {
			return errors.Wrapf(err, "invalid commitment %d", i)
		}
	}

	handle, free, err := t.loadTrustedSetup()
	if err != nil {
		return err
	}
	defer free()

	ok, err := handle.VerifyAggregateKZGProof(blobs, commitments, proof)
	if err != nil {
		return err
	}
	if !ok {
		return errVerificationFailed
	}
	fmt.Println("true")

	return nil
}
