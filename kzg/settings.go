package kzg

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/iotaledger/kzg4844/kzg/curve"
	"github.com/iotaledger/kzg4844/logger"
	"github.com/iotaledger/kzg4844/syncutils"
	"github.com/iotaledger/kzg4844/workerpool"
)

// Settings is the immutable structured reference string derived from a trusted setup,
// together with the resources used to compute with it.
type Settings struct {
	*logger.WrappedLogger

	domain *Domain
	// g1Lagrange holds [Lᵢ(s)]₁ for the bit-reversed domain, so that a commitment is a
	// linear combination with the blob's evaluations.
	g1Lagrange []curve.G1Point
	g1Gen      curve.G1Point
	g2Gen      curve.G2Point
	g2S        curve.G2Point

	workerPool *workerpool.WorkerPool
	cache      *commitmentCache
}

func newSettings(setup *TrustedSetup, opts *Options) (*Settings, error) {
	start := time.Now()

	width := uint64(len(setup.G1))
	if opts.allowedWidth != 0 && width != opts.allowedWidth {
		return nil, setupError(ErrInvalidFormat, "expected %d G1 points, got %d", opts.allowedWidth, width)
	}
	if len(setup.G2) < minG2Points {
		return nil, setupError(ErrInvalidFormat, "expected at least %d G2 points, got %d", minG2Points, len(setup.G2))
	}

	domain, err := NewDomain(width)
	if err != nil {
		return nil, setupError(ErrInvalidFormat, "%s", err)
	}

	if opts.setupCheck {
		if err = setup.check(); err != nil {
			return nil, err
		}
	}

	settings := &Settings{
		WrappedLogger: logger.NewWrappedLogger(opts.logger),
		domain:        domain,
	}
	settings.g1Gen.Set(&setup.G1[0])
	settings.g2Gen.Set(&setup.G2[0])
	settings.g2S.Set(&setup.G2[1])

	if settings.workerPool, err = workerpool.New("kzg", opts.workerCount); err != nil {
		return nil, err
	}

	if opts.cacheSize > 0 {
		if settings.cache, err = newCommitmentCache(opts.cacheSize, opts.cacheTTL); err != nil {
			settings.shutdown()

			return nil, err
		}
	}

	lagrange, err := domain.fftG1(setup.G1, true, settings.workerPool)
	if err != nil {
		settings.shutdown()

		return nil, errors.Wrap(err, "converting trusted setup to lagrange form failed")
	}
	bitReverse(lagrange)
	settings.g1Lagrange = lagrange

	settings.LogInfof("trusted setup loaded: %d G1 points, %d G2 points, %d workers, took %v",
		len(setup.G1), len(setup.G2), settings.workerPool.Size(), time.Since(start).Truncate(time.Millisecond))

	chunks, chunkSize := rangeChunks(settings.workerPool, len(lagrange))
	settings.LogDebugf("commitments use %d chunks of %d points, deadlock detection: %v", chunks, chunkSize, syncutils.DeadlockDetectionEnabled)

	return settings, nil
}

// Domain returns the evaluation domain of the settings.
func (s *Settings) Domain() *Domain {
	return s.domain
}

// Width returns the number of field elements per blob.
func (s *Settings) Width() uint64 {
	return s.domain.Cardinality
}

func (s *Settings) shutdown() {
	if s.workerPool != nil {
		s.workerPool.Shutdown()
	}

	if s.cache != nil {
		metrics := s.cache.metrics()
		s.LogDebugf("commitment cache closed: %d hits, %d misses", metrics.Retrievals, metrics.Misses)
		s.cache.close()
	}
}
