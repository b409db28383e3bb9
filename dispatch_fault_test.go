//go:build classify_testhooks

package classify

import (
	"errors"
	"io"
	"testing"
)

// These tests exercise the dispatcher's error paths deterministically
// via the classify_testhooks-gated write/read hooks, rather than
// relying on a real worker process actually misbehaving. Run with:
//
//	go test -tags classify_testhooks ./...

func newFaultTestPool(t *testing.T, n int) *Pool {
	t.Helper()

	prog, args := fakeProgram(t, "echo")

	pool, err := NewPool(n, WithProgram(prog, args...))
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}

	t.Cleanup(func() { _ = pool.Close() })

	return pool
}

func TestDispatchPipeWriteFailed(t *testing.T) {
	pool := newFaultTestPool(t, 1)

	restore := setWriteHook(func(workerIdx int, buf []byte) (error, bool) {
		return errors.New("injected write failure"), true
	})
	defer restore()

	_, err := pool.FindTypes([]string{"/bin/ls"})
	if err == nil {
		t.Fatal("want error")
	}

	if !errors.Is(err, ErrPipeWriteFailed) {
		t.Errorf("err = %v, want ErrPipeWriteFailed", err)
	}
}

func TestDispatchUnexpectedEOF(t *testing.T) {
	pool := newFaultTestPool(t, 1)

	restore := setReadHook(func(workerIdx int) ([]byte, error, bool) {
		return nil, io.EOF, true
	})
	defer restore()

	_, err := pool.FindTypes([]string{"/bin/ls", "/etc/fstab"})
	if err == nil {
		t.Fatal("want error")
	}

	if !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("err = %v, want ErrUnexpectedEOF", err)
	}
}

func TestDispatchPipeReadFailed(t *testing.T) {
	pool := newFaultTestPool(t, 1)

	restore := setReadHook(func(workerIdx int) ([]byte, error, bool) {
		return nil, errors.New("injected read failure"), true
	})
	defer restore()

	_, err := pool.FindTypes([]string{"/bin/ls", "/etc/fstab"})
	if err == nil {
		t.Fatal("want error")
	}

	if !errors.Is(err, ErrPipeReadFailed) {
		t.Errorf("err = %v, want ErrPipeReadFailed", err)
	}
}
