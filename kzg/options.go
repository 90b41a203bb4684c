package kzg

import (
	"time"

	"github.com/iotaledger/kzg4844/logger"
)

// Parameters are the configurable settings of the engine. They can be bound to a configuration.
type Parameters struct {
	// TrustedSetupPath is the path of the trusted setup file (text format, or JSON if it ends with .json).
	TrustedSetupPath string `default:"trusted_setup.txt" usage:"the path to the trusted setup file"`
	// Workers is the number of workers used for multi-scalar multiplications. 0 uses all CPUs.
	Workers int `default:"0" usage:"the number of workers for group operations (0 = number of CPUs)"`
	// SkipSetupCheck disables the pairing consistency check of a loaded trusted setup.
	SkipSetupCheck bool `default:"false" usage:"skip the pairing consistency check of the trusted setup"`
	Cache          struct {
		// Size is the number of cached commitments. 0 disables the cache.
		Size int `default:"0" usage:"the number of cached blob commitments (0 = disabled)"`
		// TTL is the time a commitment stays cached.
		TTL time.Duration `name:"ttl" default:"5m" usage:"the time a blob commitment stays cached"`
	}
}

// Options returns the options configured by the parameters.
func (p *Parameters) Options() []Option {
	opts := []Option{
		WithWorkerCount(p.Workers),
		WithSetupCheck(!p.SkipSetupCheck),
	}
	if p.Cache.Size > 0 {
		opts = append(opts, WithCommitmentCache(p.Cache.Size, p.Cache.TTL))
	}

	return opts
}

// the default options applied to a Manager.
var defaultOptions = []Option{
	WithSetupCheck(true),
}

// Options define options for the settings created by a Manager.
type Options struct {
	workerCount  int
	logger       *logger.Logger
	setupCheck   bool
	cacheSize    int
	cacheTTL     time.Duration
	allowedWidth uint64
}

// Option is a function setting an Options option.
type Option func(opts *Options)

// applies the given Option.
func (o *Options) apply(opts ...Option) {
	for _, opt := range opts {
		opt(o)
	}
}

// WithWorkerCount sets the number of workers used for group operations. A count < 1 uses all CPUs.
func WithWorkerCount(workerCount int) Option {
	return func(opts *Options) {
		opts.workerCount = workerCount
	}
}

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(opts *Options) {
		opts.logger = log
	}
}

// WithSetupCheck enables or disables the pairing consistency check of loaded trusted setups.
func WithSetupCheck(enabled bool) Option {
	return func(opts *Options) {
		opts.setupCheck = enabled
	}
}

// WithCommitmentCache caches up to size blob commitments for the given ttl.
func WithCommitmentCache(size int, ttl time.Duration) Option {
	return func(opts *Options) {
		opts.cacheSize = size
		opts.cacheTTL = ttl
	}
}

// withWidth overrides the number of field elements per blob. Only used by tests.
func withWidth(width uint64) Option {
	return func(opts *Options) {
		opts.allowedWidth = width
	}
}
