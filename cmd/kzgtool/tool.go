package main

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common/hexutil"
	flag "github.com/spf13/pflag"

	"github.com/iotaledger/kzg4844/configuration"
	"github.com/iotaledger/kzg4844/kzg"
	"github.com/iotaledger/kzg4844/logger"
)

const envPrefix = "KZGTOOL"

var errVerificationFailed = errors.New("verification failed")

// tool holds the configuration shared by all commands.
type tool struct {
	flagSet    *flag.FlagSet
	config     *configuration.Configuration
	configPath *string

	params    kzg.Parameters
	loggerCfg logger.Config

	log *logger.Logger
}

func newTool(name string) (*tool, error) {
	t := &tool{
		flagSet: flag.NewFlagSet(name, flag.ContinueOnError),
		config:  configuration.New(),
	}
	t.configPath = t.flagSet.StringP("config", "c", "", "the path to a JSON or YAML configuration file")

	if err := t.config.BindParameters(t.flagSet, "kzg", &t.params); err != nil {
		return nil, err
	}
	if err := t.config.BindParameters(t.flagSet, "logger", &t.loggerCfg); err != nil {
		return nil, err
	}

	return t, nil
}

// parse loads the configuration file, the command line flags and the environment, in that order,
// and initializes the global logger.
func (t *tool) parse(args []string) error {
	if err := t.flagSet.Parse(args); err != nil {
		return err
	}

	if *t.configPath != "" {
		if err := t.config.LoadFile(*t.configPath); err != nil {
			return errors.Wrap(err, "loading config file failed")
		}
	}
	if err := t.config.LoadFlagSet(t.flagSet); err != nil {
		return err
	}
	if err := t.config.LoadEnvironmentVars(envPrefix); err != nil {
		return err
	}
	t.config.UpdateBoundParameters()

	if err := logger.InitGlobalLogger(t.loggerCfg); err != nil {
		return err
	}
	t.log = logger.NewLogger("kzgtool")

	return nil
}

// loadTrustedSetup loads the configured trusted setup. The returned function frees it.
func (t *tool) loadTrustedSetup() (*kzg.Handle, func(), error) {
	manager := kzg.NewManager(append(t.params.Options(), kzg.WithLogger(logger.NewLogger("kzg")))...)

	handle, err := manager.LoadTrustedSetup(t.params.TrustedSetupPath)
	if err != nil {
		return nil, nil, err
	}

	return handle, func() {
		if err := manager.Free(handle); err != nil {
			t.log.Warnf("freeing trusted setup failed: %s", err)
		}
	}, nil
}

// readBlobs reads blob files. A file holds either the raw blob or its hex encoding.
func readBlobs(paths []string) ([][]byte, error) {
	if len(paths) == 0 {
		return nil, errors.New("no blob files given")
	}

	blobs := make([][]byte, len(paths))
	for i, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading blob file %s failed", path)
		}

		if len(content) != kzg.BytesPerBlob {
			text := strings.TrimSpace(string(content))
			if !strings.HasPrefix(text, "0x") && !strings.HasPrefix(text, "0X") {
				text = "0x" + text
			}

			decoded, err := hexutil.Decode(text)
			if err != nil {
				return nil, errors.Wrapf(err, "blob file %s is neither a raw nor a hex encoded blob", path)
			}
			content = decoded
		}

		blobs[i] = content
	}

	return blobs, nil
}
