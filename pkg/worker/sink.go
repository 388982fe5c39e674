package worker

import (
	"fmt"
	"io"
	"sync"
)

// Sink serializes per-file progress lines across workers behind a
// single mutex, held only for the duration of emitting one line, per
// spec.md §5's "Progress log sink" shared resource. It is the Go
// analogue of the original implementation's process-wide
// log_name_mtx guarding std::cerr.
type Sink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewSink wraps w for safe concurrent use by workers.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

// Printf formats and writes one line, holding the mutex only while
// writing.
func (s *Sink) Printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, format, args...)
}
