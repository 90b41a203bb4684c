package logger

import (
	"sync"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a simple alias for the zap sugared logger.
type Logger = zap.SugaredLogger

var (
	// ErrGlobalLoggerAlreadyInitialized is returned when SetGlobalLogger is called more than once.
	ErrGlobalLoggerAlreadyInitialized = errors.New("global logger already initialized")

	mu          sync.Mutex
	logger      *Logger
	level       = zap.NewAtomicLevel()
	initialized bool
)

// NewRootLogger creates a new root logger from the provided configuration.
func NewRootLogger(cfg Config) (*Logger, error) {
	lvl := zap.NewAtomicLevel()
	if cfg.Level != "" {
		if err := lvl.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, errors.Wrapf(err, "invalid log level %q", cfg.Level)
		}
	}

	return newRootLogger(cfg, lvl)
}

func newRootLogger(cfg Config, lvl zap.AtomicLevel) (*Logger, error) {
	encoding := cfg.Encoding
	if encoding == "" {
		encoding = DefaultCfg.Encoding
	}

	outputPaths := cfg.OutputPaths
	if len(outputPaths) == 0 {
		outputPaths = DefaultCfg.OutputPaths
	}

	zapCfg := zap.Config{
		Level:             lvl,
		DisableCaller:     cfg.DisableCaller,
		DisableStacktrace: cfg.DisableStacktrace,
		Encoding:          encoding,
		EncoderConfig:     defaultEncoderConfig,
		OutputPaths:       outputPaths,
		ErrorOutputPaths:  []string{"stderr"},
	}

	root, err := zapCfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, errors.Wrap(err, "building root logger failed")
	}

	return root.Sugar(), nil
}

// InitGlobalLogger builds the global root logger from the provided configuration.
func InitGlobalLogger(cfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	if initialized {
		return ErrGlobalLoggerAlreadyInitialized
	}

	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return errors.Wrapf(err, "invalid log level %q", cfg.Level)
		}
	}

	root, err := newRootLogger(cfg, level)
	if err != nil {
		return err
	}

	logger = root
	initialized = true

	return nil
}

// SetGlobalLogger sets the provided logger as the global logger.
func SetGlobalLogger(root *Logger) error {
	mu.Lock()
	defer mu.Unlock()

	if initialized {
		return ErrGlobalLoggerAlreadyInitialized
	}

	logger = root
	initialized = true

	return nil
}

// SetLevel changes the level of the global logger if it was created by InitGlobalLogger.
func SetLevel(l zapcore.Level) {
	level.SetLevel(l)
}

// NewLogger returns a new named child of the global root logger.
// It panics if the global logger was not initialized.
func NewLogger(name string) *Logger {
	mu.Lock()
	defer mu.Unlock()

	if !initialized {
		panic("global logger not initialized")
	}

	return logger.Named(name)
}

// NewNopLogger returns a logger that discards all output.
func NewNopLogger() *Logger {
	return zap.NewNop().Sugar()
}
