package main

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/kzg4844/kzg"
)

func TestReadBlobs(t *testing.T) {
	dir := t.TempDir()

	blob := make([]byte, kzg.BytesPerBlob)
	blob[0] = 1
	blob[kzg.BytesPerFieldElement] = 2

	rawPath := filepath.Join(dir, "raw.blob")
	require.NoError(t, os.WriteFile(rawPath, blob, 0o600))

	hexPath := filepath.Join(dir, "hex.blob")
	require.NoError(t, os.WriteFile(hexPath, []byte("0x"+hex.EncodeToString(blob)+"\n"), 0o600))

	barePath := filepath.Join(dir, "bare.blob")
	require.NoError(t, os.WriteFile(barePath, []byte(hex.EncodeToString(blob)), 0o600))

	blobs, err := readBlobs([]string{rawPath, hexPath, barePath})
	require.NoError(t, err)
	require.Len(t, blobs, 3)
	assert.Equal(t, blob, blobs[0])
	assert.Equal(t, blob, blobs[1])
	assert.Equal(t, blob, blobs[2])

	oddPath := filepath.Join(dir, "odd.blob")
	require.NoError(t, os.WriteFile(oddPath, []byte("0xabc"), 0o600))
	_, err = readBlobs([]string{oddPath})
	assert.Error(t, err)

	invalidPath := filepath.Join(dir, "invalid.blob")
	require.NoError(t, os.WriteFile(invalidPath, []byte("not a blob"), 0o600))
	_, err = readBlobs([]string{invalidPath})
	assert.Error(t, err)

	_, err = readBlobs(nil)
	assert.Error(t, err)
}

func TestNewTool(t *testing.T) {
	tl, err := newTool("test")
	require.NoError(t, err)

	require.NoError(t, tl.flagSet.Parse([]string{"--kzg.workers", "3", "--kzg.cache.ttl", "1m"}))
	require.NoError(t, tl.config.LoadFlagSet(tl.flagSet))
	tl.config.UpdateBoundParameters()

	assert.Equal(t, 3, tl.params.Workers)
	assert.Equal(t, "trusted_setup.txt", tl.params.TrustedSetupPath)
	assert.Equal(t, "info", tl.loggerCfg.Level)
	assert.Len(t, tl.params.Options(), 2)
}
