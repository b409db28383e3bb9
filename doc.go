// Package classify batch-classifies file paths by delegating to an
// external file-type-identification program (the Unix "file" command
// by default) through a pool of long-lived worker processes.
//
// # Basic usage
//
//	pool, err := classify.NewPool(4)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	types, err := pool.FindTypes([]string{"/bin/ls", "/etc/fstab"})
//	if err != nil {
//	    return err
//	}
//
// # Concurrency
//
// A Pool is single-threaded cooperative in the same sense the
// underlying pool is: FindTypes, SetParallelism, and Close must be
// called from one goroutine at a time, and not concurrently with each
// other. Stats, ClearStats, and LastError are the exceptions and may
// be called from any goroutine at any time.
//
// # Cancellation
//
// FindTypes takes no context.Context. There is no cancellation or
// timeout support: a worker that stops producing output hangs the
// call. This is a deliberate limitation, not an oversight -- see
// FindTypes's doc comment.
package classify
