package configuration_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	flag "github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/kzg4844/configuration"
)

func writeFile(t *testing.T, name string, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestFetchFlagset(t *testing.T) {
	testFlagSet := flag.NewFlagSet("", flag.ContinueOnError)
	testFlagSet.String("A", "123", "test")
	require.NoError(t, testFlagSet.Set("A", "321"))

	config := configuration.New()
	require.NoError(t, config.LoadFlagSet(testFlagSet))

	require.EqualValues(t, "321", config.String("A"))
}

func TestFetchEnvVars(t *testing.T) {
	testFlagSet := flag.NewFlagSet("", flag.ContinueOnError)
	testFlagSet.String("B", "322", "test")

	t.Setenv("KZGTEST_B", "321")
	t.Setenv("KZGTEST_C", "321")

	config := configuration.New()
	require.NoError(t, config.LoadFlagSet(testFlagSet))
	require.NoError(t, config.LoadEnvironmentVars("KZGTEST"))

	require.EqualValues(t, "321", config.String("B"))

	_, exists := config.All()["c"]
	require.False(t, exists, "expected read config value to not exist")
}

func TestFetchJSONFile(t *testing.T) {
	config := configuration.New()
	require.NoError(t, config.LoadFile(writeFile(t, "config.json", `{"Kzg": {"Workers": 3}}`)))

	require.EqualValues(t, 3, config.Int("kzg.workers"))
	require.EqualValues(t, 3, config.Int("KZG.Workers"))
}

func TestFetchYAMLFile(t *testing.T) {
	config := configuration.New()
	require.NoError(t, config.LoadFile(writeFile(t, "config.yaml", "Kzg:\n  TrustedSetupPath: setup.txt\n")))

	require.EqualValues(t, "setup.txt", config.String("kzg.trustedsetuppath"))
}

func TestLoadFileErrors(t *testing.T) {
	config := configuration.New()

	assert.Error(t, config.LoadFile(filepath.Join(t.TempDir(), "missing.json")))

	err := config.LoadFile(writeFile(t, "config.toml", "a = 1"))
	assert.True(t, errors.Is(err, configuration.ErrUnknownConfigFormat))
}

func TestStoreFile(t *testing.T) {
	config := configuration.New()
	require.NoError(t, config.LoadFile(writeFile(t, "config.json", `{"logger": {"level": "debug"}}`)))

	path := filepath.Join(t.TempDir(), "stored.yaml")
	require.NoError(t, config.StoreFile(path))

	reloaded := configuration.New()
	require.NoError(t, reloaded.LoadFile(path))
	require.Equal(t, "debug", reloaded.String("logger.level"))
}

type testParameters struct {
	TrustedSetupPath string        `default:"trusted_setup.txt" usage:"path to the trusted setup"`
	Workers          int           `usage:"number of workers"`
	CacheTTL         time.Duration `name:"cacheTTL" default:"1m" usage:"ttl of cached commitments"`
	Verify           bool          `default:"true" usage:"verify the setup"`
	Outputs          []string      `default:"stdout,stderr" usage:"outputs"`
	Nested           struct {
		Size uint64 `default:"64" usage:"size"`
	}
}

func TestBindParameters(t *testing.T) {
	params := &testParameters{Workers: 2}

	flagSet := flag.NewFlagSet("", flag.ContinueOnError)
	config := configuration.New()
	require.NoError(t, config.BindParameters(flagSet, "kzg", params))

	require.NoError(t, flagSet.Parse([]string{"--kzg.workers=8"}))
	require.NoError(t, config.LoadFile(writeFile(t, "config.json", `{"kzg": {"trustedSetupPath": "other.txt"}}`)))
	require.NoError(t, config.LoadFlagSet(flagSet))

	config.UpdateBoundParameters()

	assert.Equal(t, "other.txt", params.TrustedSetupPath)
	assert.Equal(t, 8, params.Workers)
	assert.Equal(t, time.Minute, params.CacheTTL)
	assert.True(t, params.Verify)
	assert.Equal(t, []string{"stdout", "stderr"}, params.Outputs)
	assert.EqualValues(t, 64, params.Nested.Size)
}

func TestBindParametersUnsupportedType(t *testing.T) {
	params := &struct {
		Ratio float32
	}{}

	err := configuration.New().BindParameters(flag.NewFlagSet("", flag.ContinueOnError), "x", params)
	assert.True(t, errors.Is(err, configuration.ErrUnsupportedParameterType))
}
