package classify

import (
	"bytes"
	"io"
	"time"
)

// FindTypes classifies each path in input by writing it to a pool
// worker and reading back the external program's one-line description,
// returning a slice the same length as input with out[i] the
// classification of input[i] regardless of which worker handled it or
// in what order workers became readable.
//
// FindTypes has no context.Context parameter: the library documents no
// cancellation or timeout support (a stuck worker hangs the call
// indefinitely). It must be called from a single goroutine at a time,
// and not concurrently with SetParallelism or Close on the same Pool.
//
// An empty input returns an empty output immediately without touching
// the pool or the stats counters.
func (p *Pool) FindTypes(input []string) ([]string, error) {
	const fn = "find_types"

	if len(input) == 0 {
		return []string{}, nil
	}

	if err := p.shrinkToFit(len(input)); err != nil {
		wrapped := newError(fn, kindOf(err), err)
		p.setLastError(wrapped)

		return nil, wrapped
	}

	start := time.Now()

	out, err := p.dispatch(input)
	if err != nil {
		wrapped := newError(fn, kindOf(err), err)
		p.setLastError(wrapped)

		return nil, wrapped
	}

	p.stats.add(uint64(len(input)), time.Since(start))

	return out, nil
}

// shrinkToFit resizes the pool down to t when t is smaller than the
// current worker count, so every worker has work and the readiness
// wait never spins on a permanently idle descriptor.
func (p *Pool) shrinkToFit(t int) error {
	p.mu.Lock()
	n := len(p.workers)
	p.mu.Unlock()

	if t < n {
		return p.SetParallelism(t)
	}

	return nil
}

// pendingQueue is the per-worker ordered list of result-vector indices
// dispatched to that worker but not yet filled. It lives only for the
// duration of one FindTypes call.
type pendingQueue struct {
	indices []int
}

func (q *pendingQueue) push(idx int) { q.indices = append(q.indices, idx) }
func (q *pendingQueue) empty() bool  { return len(q.indices) == 0 }
func (q *pendingQueue) front() int   { return q.indices[0] }
func (q *pendingQueue) pop()         { q.indices = q.indices[1:] }

func (p *Pool) dispatch(input []string) ([]string, error) {
	p.mu.Lock()
	workers := p.workers
	waiter := p.waiter
	p.mu.Unlock()

	n := len(workers)
	t := len(input)

	result := make([]string, t)
	residual := make([][]byte, n)
	pending := make([]pendingQueue, n)

	chunk := min(defaultChunkSizeFor(p.cfg.ChunkSize), t/n)
	if chunk < 1 {
		chunk = 1
	}

	toWrite := 0
	remaining := t

	for remaining > 0 {
		// A. Liveness check: a dead worker can never deliver the
		// classifications still queued on it.
		for _, w := range workers {
			if w.isDead() {
				return nil, newKindError(ErrWorkerDied, nil)
			}
		}

		// B. Dispatch phase: top up any idle worker with a fresh
		// chunk of paths.
		for i, w := range workers {
			if !pending[i].empty() || toWrite >= t {
				continue
			}

			k := min(chunk, t-toWrite)
			buf := make([]byte, 0, k*32)

			for j := 0; j < k; j++ {
				buf = append(buf, input[toWrite+j]...)
				buf = append(buf, '\n')
				pending[i].push(toWrite + j)
			}

			toWrite += k

			if hookErr, handled := writeHook(i, buf); handled {
				if hookErr != nil {
					return nil, newKindError(ErrPipeWriteFailed, hookErr)
				}
			} else if err := writeAll(w.stdinWriter(), buf); err != nil {
				return nil, newKindError(ErrPipeWriteFailed, err)
			}
		}

		// Build the set of workers we still need output from.
		awaiting := make([]int, 0, n)

		for i := range workers {
			if !pending[i].empty() {
				awaiting = append(awaiting, i)
			}
		}

		// C. Readiness wait (blocks, no timeout) and D. collect, fused
		// in the unix/portable waiters: each returns the bytes already
		// read for every worker that became readable.
		chunks, err := waiter.wait(workers, awaiting)
		if err != nil {
			return nil, err
		}

		for _, rc := range chunks {
			i := rc.idx

			if data, hookErr, handled := readHook(i); handled {
				rc.data, rc.err = data, hookErr
			}

			if pending[i].empty() {
				// Stray readiness after dispatch; nothing queued to
				// attribute these bytes to.
				continue
			}

			if len(rc.data) == 0 {
				if rc.err != nil && rc.err != io.EOF {
					return nil, newKindError(ErrPipeReadFailed, rc.err)
				}

				return nil, newKindError(ErrUnexpectedEOF, nil)
			}

			residual[i] = append(residual[i], rc.data...)

			for remaining > 0 {
				nl := bytes.IndexByte(residual[i], '\n')
				if nl < 0 {
					break
				}

				line := residual[i][:nl]
				residual[i] = residual[i][nl+1:]

				idx := pending[i].front()
				pending[i].pop()

				result[idx] += string(line)
				remaining--
			}

			if rc.err != nil && rc.err != io.EOF {
				return nil, newKindError(ErrPipeReadFailed, rc.err)
			}
		}
	}

	return result, nil
}

func defaultChunkSizeFor(configured int) int {
	if configured < minAllowedChunk {
		return defaultChunkSize
	}

	return configured
}

func writeAll(w io.Writer, buf []byte) error {
	for len(buf) > 0 {
		n, err := w.Write(buf)
		if err != nil {
			return err
		}

		buf = buf[n:]
	}

	return nil
}
