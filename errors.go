package classify

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per error kind in the taxonomy. Use errors.Is
// against these to classify a failure returned from the public API
// without string-matching on Error().
var (
	ErrInvalidParallelism       = errors.New("invalid parallelism")
	ErrAllocationFailed         = errors.New("allocation failed")
	ErrPipeAllocationFailed     = errors.New("pipe allocation failed")
	ErrForkFailed               = errors.New("fork failed")
	ErrDescriptorRedirectFailed = errors.New("descriptor redirect failed")
	ErrDescriptorCloseFailed    = errors.New("descriptor close failed")
	ErrExecFailed               = errors.New("exec failed")
	ErrPipeReadFailed           = errors.New("pipe read failed")
	ErrPipeWriteFailed          = errors.New("pipe write failed")
	ErrUnexpectedEOF            = errors.New("unexpected EOF")
	ErrWorkerDied               = errors.New("worker died")
	ErrNullArgument             = errors.New("null argument")
)

// kindError is the internal error currency used below the public API
// boundary: a sentinel Kind plus an optional underlying cause, with no
// function name attached yet. Only the outermost PublicAPI entry point
// (NewPool, Pool.SetParallelism/FindTypes/Close) attaches the function
// name, by wrapping a kindError in an *Error: intermediate layers
// bubble the original reason, and only the outermost entry point
// prefixes the function name.
type kindError struct {
	Kind error
	Err  error
}

func (e *kindError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}

	return e.Kind.Error()
}

func (e *kindError) Unwrap() error { return e.Err }

func (e *kindError) Is(target error) bool { return e.Kind == target }

func newKindError(kind error, cause error) *kindError {
	return &kindError{Kind: kind, Err: cause}
}

// kindOf extracts the sentinel Kind from a kindError or *Error,
// defaulting to ErrAllocationFailed for anything else.
func kindOf(err error) error {
	switch e := err.(type) {
	case *kindError:
		return e.Kind
	case *Error:
		return e.Kind
	default:
		return ErrAllocationFailed
	}
}

// Error is the error type returned at the public API boundary. It
// renders as "<function>: <reason>", the library's documented
// last-error format. Func is the name of the failed entry point; Kind
// is one of the sentinel errors above and is what errors.Is matches
// against; Err, if set, is the underlying cause (e.g. the *os.PathError
// from a failed syscall).
type Error struct {
	Func string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Func, e.Kind, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Func, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes errors.Is(err, classify.ErrWorkerDied) work against the
// outer *Error without requiring the caller to unwrap first.
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

// newError composes the final PublicAPI-boundary error: fn is the
// failed entry point's name; cause is whatever an internal layer
// returned (a bare sentinel, a *kindError, or nil for a simple
// validation failure). The function name is attached exactly once,
// here, regardless of how many internal layers the cause passed
// through.
func newError(fn string, kind error, cause error) *Error {
	inner := cause

	switch c := cause.(type) {
	case *kindError:
		inner = c.Err
	case *Error:
		inner = c.Err
	default:
		if cause == kind {
			inner = nil
		}
	}

	return &Error{Func: fn, Kind: kind, Err: inner}
}
