package classify

import (
	"sync"
	"sync/atomic"
)

// Pool is a fixed-size collection of worker processes running a single
// external file-classification program, plus the dispatcher that feeds
// them. A Pool is not safe for concurrent use: FindTypes, SetParallelism,
// and Close must be called from a single goroutine at a time, matching
// the library's documented single-caller-thread precondition. Stats,
// ClearStats, and LastError are the three exceptions and may be called
// concurrently with everything else.
type Pool struct {
	cfg options

	mu      sync.Mutex // guards workers and waiter while they are read or replaced
	workers []*worker
	waiter  *readinessWaiter // rebuilt whenever workers is replaced; persists across FindTypes calls otherwise

	stats     statsAccumulator
	lastError atomic.Pointer[string]
}

// NewPool creates a Pool and spawns n worker processes. n must be
// positive; 0 or negative returns ErrInvalidParallelism.
func NewPool(n int, opts ...Option) (*Pool, error) {
	const fn = "new_pool"

	p := &Pool{cfg: applyOptions(opts)}

	if err := p.SetParallelism(n); err != nil {
		wrapped := newError(fn, kindOf(err), err)
		p.setLastError(wrapped)

		return nil, wrapped
	}

	return p, nil
}

// SetParallelism tears down the current pool (if any) and spawns n
// fresh workers. The pool is left either fully up at the new size or
// fully down if spawning fails -- never a partial state.
//
// n must be positive; 0 or negative is ErrInvalidParallelism and leaves
// the pool torn down, since a caller seeing an error cannot assume any
// workers are still live.
func (p *Pool) SetParallelism(n int) error {
	const fn = "set_parallelism"

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.shutdownLocked(); err != nil {
		wrapped := newError(fn, ErrDescriptorCloseFailed, err)
		p.setLastError(wrapped)

		return wrapped
	}

	if n <= 0 {
		err := newError(fn, ErrInvalidParallelism, nil)
		p.setLastError(err)

		return err
	}

	workers := make([]*worker, 0, n)

	for i := 0; i < n; i++ {
		w, err := spawnWorker(p.cfg.Program, p.cfg.Args)
		if err != nil {
			for _, spawned := range workers {
				_ = spawned.teardown()
			}

			wrapped := newError(fn, kindOf(err), err)
			p.setLastError(wrapped)

			return wrapped
		}

		workers = append(workers, w)
	}

	p.workers = workers
	p.waiter = newReadinessWaiter(len(workers), p.cfg.QueueDepth)

	return nil
}

// Close tears down the pool. Safe to call when no worker is allocated
// and safe to call more than once; the second and later calls succeed
// immediately.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.shutdownLocked()
	if err != nil {
		wrapped := newError("done", ErrDescriptorCloseFailed, err)
		p.setLastError(wrapped)

		return wrapped
	}

	return nil
}

func (p *Pool) shutdownLocked() error {
	var firstErr error

	for _, w := range p.workers {
		if err := w.teardown(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	p.workers = nil
	p.waiter = nil

	return firstErr
}

// Stats returns a snapshot of cumulative files-classified and
// time-spent counters. Safe to call concurrently with FindTypes.
func (p *Pool) Stats() Stats {
	return p.stats.snapshot()
}

// ClearStats resets both accumulators to zero. Safe to call
// concurrently with FindTypes; never fails.
func (p *Pool) ClearStats() {
	p.stats.clear()
}

// LastError returns the most recently recorded error's message, or the
// empty string if no entry point has failed since the pool was created.
// A later successful call does not clear it. Never fails.
func (p *Pool) LastError() string {
	s := p.lastError.Load()
	if s == nil {
		return ""
	}

	return *s
}

func (p *Pool) setLastError(err error) {
	s := err.Error()
	p.lastError.Store(&s)
}

