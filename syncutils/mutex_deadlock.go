//go:build deadlock

package syncutils

import (
	"time"

	"github.com/sasha-s/go-deadlock"
)

// RWMutex is a read/write mutex that reports lock acquisitions which do not complete within the deadlock timeout.
type RWMutex = deadlock.RWMutex

// DeadlockDetectionEnabled reports whether the deadlock detecting mutex is in use.
const DeadlockDetectionEnabled = true

func init() {
	deadlock.Opts.DeadlockTimeout = 20 * time.Second
}
