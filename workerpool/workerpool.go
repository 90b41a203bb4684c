package workerpool

import (
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/atomic"
)

// ErrPoolShutdown is returned if a task is submitted to a pool that was shut down.
var ErrPoolShutdown = errors.New("worker pool was shut down")

// WorkerPool is a fixed capacity goroutine pool backed by ants.
// Tasks are submitted in batches and the submitter waits for the whole batch to finish.
type WorkerPool struct {
	name         string
	pool         *ants.Pool
	stopped      *atomic.Bool
	shutdownOnce sync.Once
}

// New creates a WorkerPool with the given number of workers.
// A workerCount < 1 uses runtime.NumCPU() workers.
func New(name string, workerCount int) (*WorkerPool, error) {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, errors.Wrapf(err, "creating worker pool %s failed", name)
	}

	return &WorkerPool{
		name:    name,
		pool:    pool,
		stopped: atomic.NewBool(false),
	}, nil
}

// Name returns the name of the pool.
func (w *WorkerPool) Name() string {
	return w.name
}

// Size returns the number of workers of the pool.
func (w *WorkerPool) Size() int {
	if w.stopped.Load() {
		return 0
	}

	return w.pool.Cap()
}

// Batch creates a new group of tasks that can be waited for.
func (w *WorkerPool) Batch() *Batch {
	return &Batch{workerPool: w}
}

// Shutdown releases the workers of the pool. Running tasks are finished.
func (w *WorkerPool) Shutdown() {
	w.shutdownOnce.Do(func() {
		w.stopped.Store(true)
		w.pool.Release()
	})
}

// IsShutdown returns true if the pool was shut down.
func (w *WorkerPool) IsShutdown() bool {
	return w.stopped.Load()
}

// Batch is a group of tasks submitted to a WorkerPool.
type Batch struct {
	workerPool *WorkerPool
	tasksWg    sync.WaitGroup

	errMutex sync.Mutex
	err      error
}

// Submit schedules the task on the pool. It blocks while all workers are busy.
func (b *Batch) Submit(task func()) error {
	if b.workerPool.stopped.Load() {
		return ErrPoolShutdown
	}

	b.tasksWg.Add(1)

	if err := b.workerPool.pool.Submit(func() {
		defer b.tasksWg.Done()
		defer func() {
			if r := recover(); r != nil {
				b.setErr(errors.Newf("recovered from panic in worker pool %s: %v\n%s", b.workerPool.name, r, debug.Stack()))
			}
		}()

		task()
	}); err != nil {
		b.tasksWg.Done()

		if errors.Is(err, ants.ErrPoolClosed) {
			return ErrPoolShutdown
		}

		return errors.Wrapf(err, "submitting task to worker pool %s failed", b.workerPool.name)
	}

	return nil
}

// Wait blocks until all submitted tasks are done and returns the first panic of a task as an error.
func (b *Batch) Wait() error {
	b.tasksWg.Wait()

	b.errMutex.Lock()
	defer b.errMutex.Unlock()

	return b.err
}

func (b *Batch) setErr(err error) {
	b.errMutex.Lock()
	defer b.errMutex.Unlock()

	if b.err == nil {
		b.err = err
	}
}
