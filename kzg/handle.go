package kzg

import (
	"go.uber.org/atomic"

	"github.com/iotaledger/kzg4844/syncutils"
)

// Handle gives access to a loaded trusted setup. A Handle is safe for concurrent use until it is freed.
// Operations that are running when the handle is freed complete before the settings are released.
type Handle struct {
	manager *Manager

	mutex    syncutils.RWMutex
	settings *Settings
	freed    bool
	inFlight *atomic.Int64
}

func newHandle(manager *Manager, settings *Settings) *Handle {
	return &Handle{
		manager:  manager,
		settings: settings,
		inFlight: atomic.NewInt64(0),
	}
}

// acquire returns the settings of the handle and a function releasing them.
func (h *Handle) acquire() (*Settings, func(), error) {
	if h == nil {
		return nil, nil, stateError(ErrNotLoaded)
	}

	h.mutex.RLock()
	if h.freed {
		h.mutex.RUnlock()

		return nil, nil, stateError(ErrUseAfterFree)
	}
	h.inFlight.Inc()

	return h.settings, func() {
		h.inFlight.Dec()
		h.mutex.RUnlock()
	}, nil
}

// Width returns the number of field elements per blob of the loaded setup.
func (h *Handle) Width() (uint64, error) {
	settings, release, err := h.acquire()
	if err != nil {
		return 0, err
	}
	defer release()

	return settings.Width(), nil
}

// IsFreed returns whether the handle was freed.
func (h *Handle) IsFreed() bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return h.freed
}

// free waits for running operations and releases the settings.
func (h *Handle) free() error {
	inFlight := h.inFlight.Load()
	if inFlight > 0 {
		h.settings.LogDebugf("waiting for %d operations before freeing the trusted setup", inFlight)
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.freed {
		return stateError(ErrUseAfterFree)
	}

	h.settings.shutdown()
	h.settings.LogInfof("trusted setup freed, %d operations were running", inFlight)
	h.freed = true

	return nil
}
