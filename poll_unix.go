//go:build unix

package classify

import (
	"golang.org/x/sys/unix"
)

const readChunkSize = 64 * 1024

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

// readinessWaiter blocks until at least one of a set of worker stdout
// descriptors is readable, then reads from each readable descriptor
// and returns the resulting bytes. One waiter serves a whole worker
// generation; its poll set is rebuilt on every wait call from whichever
// workers currently have pending work.
type readinessWaiter struct {
	fds []unix.PollFd
	idx []int
	buf [readChunkSize]byte
}

func newReadinessWaiter(_, _ int) *readinessWaiter {
	return &readinessWaiter{}
}

// wait polls the given worker indices and, for every one that becomes
// readable, performs a single read and returns the outcome. Blocks
// with no timeout: a stuck worker hangs the call, by design.
func (rw *readinessWaiter) wait(workers []*worker, pending []int) ([]readyChunk, error) {
	rw.fds = rw.fds[:0]
	rw.idx = rw.idx[:0]

	for _, i := range pending {
		rw.fds = append(rw.fds, unix.PollFd{Fd: int32(workers[i].stdoutFd()), Events: unix.POLLIN})
		rw.idx = append(rw.idx, i)
	}

	if len(rw.fds) == 0 {
		return nil, nil
	}

	for {
		_, err := unix.Poll(rw.fds, -1)
		if err == unix.EINTR {
			continue
		}

		if err != nil {
			return nil, newKindError(ErrPipeReadFailed, err)
		}

		break
	}

	var out []readyChunk

	for i, fd := range rw.fds {
		if fd.Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) == 0 {
			continue
		}

		n, err := workers[rw.idx[i]].stdoutReader().Read(rw.buf[:])

		chunk := readyChunk{idx: rw.idx[i]}
		if n > 0 {
			chunk.data = append([]byte(nil), rw.buf[:n]...)
		}

		if err != nil {
			chunk.err = err
		}

		out = append(out, chunk)
	}

	return out, nil
}
