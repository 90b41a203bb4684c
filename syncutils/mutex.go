//go:build !deadlock

package syncutils

import (
	"sync"
)

// RWMutex is a sync.RWMutex that is swapped for a deadlock detecting one when building with the deadlock tag.
type RWMutex = sync.RWMutex

// DeadlockDetectionEnabled reports whether the deadlock detecting mutex is in use.
const DeadlockDetectionEnabled = false
