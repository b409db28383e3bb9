package classify

// Option configures a [Pool].
type Option func(*options)

const (
	defaultProgram    = "/usr/bin/file"
	defaultChunkSize  = 50
	defaultQueueDepth = 64 * 1024
	minAllowedChunk   = 1
)

type options struct {
	Program    string
	Args       []string
	ChunkSize  int
	QueueDepth int
}

func defaultOptions() options {
	return options{
		Program:    defaultProgram,
		Args:       []string{"-n", "-f-"},
		ChunkSize:  defaultChunkSize,
		QueueDepth: defaultQueueDepth,
	}
}

func applyOptions(opts []Option) options {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.ChunkSize < minAllowedChunk {
		cfg.ChunkSize = defaultChunkSize
	}

	if cfg.QueueDepth <= 0 {
		cfg.QueueDepth = defaultQueueDepth
	}

	return cfg
}

// WithProgram overrides the external classification program and its
// argument vector. The default is "/usr/bin/file" invoked with "-n"
// (disable output buffering) and "-f-" (read paths from standard
// input). The external program must emit one newline-terminated
// description per input line, in input order, without requiring
// stdin to be closed first.
//
// Passing a program that does not honor this contract will deadlock or
// misclassify; FindTypes has no way to detect a noncompliant program
// other than the existing error taxonomy (UnexpectedEOF, WorkerDied).
func WithProgram(path string, args ...string) Option {
	return func(o *options) {
		o.Program = path
		o.Args = append([]string(nil), args...)
	}
}

// WithChunkSize overrides the per-write chunk cap used by the
// dispatcher (default 50). The effective chunk for a given call is
// further capped to len(input)/parallelism so that small batches are
// spread across workers rather than piling onto worker 0.
//
// Values <= 0 fall back to the default.
func WithChunkSize(n int) Option {
	return func(o *options) {
		o.ChunkSize = n
	}
}

// WithQueueDepth sets the size of the buffered channel used to
// forward worker output readiness events on platforms without poll(2)
// (see poll_other.go). It has no effect on platforms with poll(2)
// support. Values <= 0 fall back to the default.
func WithQueueDepth(n int) Option {
	return func(o *options) {
		o.QueueDepth = n
	}
}
