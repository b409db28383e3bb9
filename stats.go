package classify

import (
	"sync"
	"time"
)

// Stats reports cumulative pool activity counters.
//
// Both fields accumulate across successful FindTypes calls and are
// untouched by failed ones; ClearStats resets them to zero.
type Stats struct {
	// Files is the total number of paths classified across all
	// successful FindTypes calls since the pool was created or last
	// cleared.
	Files uint64
	// Elapsed is the total wall-clock time spent inside successful
	// FindTypes calls since the pool was created or last cleared.
	Elapsed time.Duration
}

// statsAccumulator guards Stats with a mutex rather than atomics: the
// two fields must be updated together, and FindTypes itself runs on a
// single caller goroutine per spec, so the mutex only ever contends
// with concurrent Stats/ClearStats callers, not with FindTypes itself.
type statsAccumulator struct {
	mu    sync.Mutex
	files uint64
	dur   time.Duration
}

func (s *statsAccumulator) add(files uint64, dur time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.files += files
	s.dur += dur
}

func (s *statsAccumulator) snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Stats{Files: s.files, Elapsed: s.dur}
}

func (s *statsAccumulator) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.files = 0
	s.dur = 0
}
