package kzg

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/iotaledger/kzg4844/syncutils"
)

// Manager owns the lifecycle of the trusted setup. At most one setup is live per Manager,
// a new one can be loaded after the live one was freed.
type Manager struct {
	mutex  syncutils.RWMutex
	handle *Handle
	opts   *Options
}

// NewManager creates a Manager. Loaded setups must have exactly FieldElementsPerBlob G1 points.
func NewManager(opts ...Option) *Manager {
	options := &Options{
		allowedWidth: FieldElementsPerBlob,
	}
	options.apply(defaultOptions...)
	options.apply(opts...)

	return &Manager{
		opts: options,
	}
}

// LoadTrustedSetup loads the trusted setup file at path. Files ending in .json are parsed as JSON,
// all others in the text format.
func (m *Manager) LoadTrustedSetup(path string) (*Handle, error) {
	if err := m.checkNotLoaded(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, setupError(ErrFileNotFound, "%s", path)
		}

		return nil, setupError(ErrIO, "%s", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		setup, err := ParseTrustedSetupJSON(bytes.NewReader(content))
		if err != nil {
			return nil, err
		}

		return m.LoadTrustedSetupFromSetup(setup)
	}

	return m.LoadTrustedSetupFromReader(bytes.NewReader(content))
}

// LoadTrustedSetupFromReader loads a trusted setup in the text format.
func (m *Manager) LoadTrustedSetupFromReader(r io.Reader) (*Handle, error) {
	if err := m.checkNotLoaded(); err != nil {
		return nil, err
	}

	setup, err := ParseTrustedSetup(r)
	if err != nil {
		return nil, err
	}

	return m.LoadTrustedSetupFromSetup(setup)
}

// LoadTrustedSetupFromSetup loads an already parsed trusted setup.
func (m *Manager) LoadTrustedSetupFromSetup(setup *TrustedSetup) (*Handle, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.handle != nil {
		return nil, stateError(ErrAlreadyLoaded)
	}

	settings, err := newSettings(setup, m.opts)
	if err != nil {
		return nil, err
	}
	m.handle = newHandle(m, settings)

	return m.handle, nil
}

func (m *Manager) checkNotLoaded() error {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.handle != nil {
		return stateError(ErrAlreadyLoaded)
	}

	return nil
}

// Handle returns the live handle.
func (m *Manager) Handle() (*Handle, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.handle == nil {
		return nil, stateError(ErrNotLoaded)
	}

	return m.handle, nil
}

// Free releases the trusted setup of the handle. Freeing a handle twice returns ErrUseAfterFree.
func (m *Manager) Free(h *Handle) error {
	if h == nil {
		return stateError(ErrNotLoaded)
	}
	if h.IsFreed() {
		return stateError(ErrUseAfterFree)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if h.manager != m || m.handle != h {
		return stateError(ErrNotLoaded)
	}

	if err := h.free(); err != nil {
		return err
	}
	m.handle = nil

	return nil
}
