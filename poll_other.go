//go:build !unix

package classify

import (
	"reflect"
	"sync"
)

// readyChunk is one readiness-and-read result for a single worker: the
// bytes obtained from its stdout, or the error that occurred while
// reading. End-of-file arrives as zero-length data with err == io.EOF;
// the dispatcher also treats zero-length data with a nil error as
// end-of-file.
type readyChunk struct {
	idx  int
	data []byte
	err  error
}

// readinessWaiter emulates the unix poll(2)-based waiter on platforms
// without it. Each worker gets one forwarding goroutine that performs
// blocking reads and posts the result to a buffered channel; wait
// blocks on the union of those channels until at least one has a
// result, then drains whatever else is already available without
// blocking further.
//
// The forwarding goroutines do no scheduling: they never decide which
// worker to service next, never touch the PendingQueue or the result
// vector, and carry no state but "read, then send." All dispatch
// decisions remain on the single goroutine driving find_types, so the
// single-threaded-cooperative-parent model is preserved in spirit even
// though extra goroutines exist to work around the lack of poll(2).
type readinessWaiter struct {
	mu         sync.Mutex
	queueDepth int
	pumps      map[int]chan readyChunk
	started    map[int]bool
}

func newReadinessWaiter(n, queueDepth int) *readinessWaiter {
	if queueDepth < 1 {
		queueDepth = 1
	}

	return &readinessWaiter{
		queueDepth: queueDepth,
		pumps:      make(map[int]chan readyChunk, n),
		started:    make(map[int]bool, n),
	}
}

func (rw *readinessWaiter) ensurePump(workers []*worker, i int) chan readyChunk {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	ch, ok := rw.pumps[i]
	if !ok {
		ch = make(chan readyChunk, rw.queueDepth)
		rw.pumps[i] = ch
	}

	if !rw.started[i] {
		rw.started[i] = true

		go pumpWorker(workers[i], i, ch)
	}

	return ch
}

func pumpWorker(w *worker, idx int, ch chan readyChunk) {
	buf := make([]byte, 64*1024)

	for {
		n, err := w.stdoutReader().Read(buf)

		chunk := readyChunk{idx: idx}
		if n > 0 {
			chunk.data = append([]byte(nil), buf[:n]...)
		}

		chunk.err = err

		ch <- chunk

		if err != nil {
			return
		}
	}
}

// wait blocks until at least one pending worker has produced a chunk,
// then returns every chunk immediately available without blocking
// further.
func (rw *readinessWaiter) wait(workers []*worker, pending []int) ([]readyChunk, error) {
	if len(pending) == 0 {
		return nil, nil
	}

	chans := make([]chan readyChunk, len(pending))
	for i, idx := range pending {
		chans[i] = rw.ensurePump(workers, idx)
	}

	var out []readyChunk

	out = append(out, blockingRecv(chans))

	for {
		more, ok := nonBlockingRecv(chans)
		if !ok {
			break
		}

		out = append(out, more)
	}

	return out, nil
}

// blockingRecv waits for the first of the given channels to produce a
// value. The set of channels changes every dispatch iteration (whoever
// still has pending work), so a dynamic reflect.Select is used instead
// of a fixed select statement.
func blockingRecv(chans []chan readyChunk) readyChunk {
	cases := make([]reflect.SelectCase, len(chans))
	for i, ch := range chans {
		cases[i] = reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(ch)}
	}

	_, value, _ := reflect.Select(cases)

	return value.Interface().(readyChunk)
}

func nonBlockingRecv(chans []chan readyChunk) (readyChunk, bool) {
	for _, ch := range chans {
		select {
		case v := <-ch:
			return v, true
		default:
		}
	}

	return readyChunk{}, false
}
