// Package progress provides a live, ticking byte-throughput reporter
// for the extraction pipeline, grounded on the teacher repo's global
// progress logger. It is rewritten here as a per-run instance rather
// than process-wide global state, since a single process can run
// multiple extractions (notably in tests) and the original's package
// level atomics would make those races on each other.
package progress

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"
)

// Tracker periodically reports cumulative bytes written against a
// known total, on its own goroutine, until Stop is called.
type Tracker struct {
	total     uint64
	processed atomic.Uint64
	quiet     bool
	out       io.Writer
	interval  time.Duration
	done      chan struct{}
	stopped   chan struct{}
}

// New returns a Tracker for an extraction expected to write total
// bytes. When quiet is true, AddBytes still accumulates but no ticks
// are printed — the tracker becomes a no-op reporter, matching -q.
func New(total uint64, quiet bool, out io.Writer) *Tracker {
	if total == 0 {
		total = 1 // avoid a division by zero when reporting percentage
	}
	return &Tracker{
		total:    total,
		quiet:    quiet,
		out:      out,
		interval: 250 * time.Millisecond,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Start launches the reporting goroutine. It is a no-op in quiet mode.
func (t *Tracker) Start() {
	if t.quiet {
		close(t.stopped)
		return
	}
	go t.run()
}

// Stop halts the reporting goroutine and blocks until it has finished
// printing its final line.
func (t *Tracker) Stop() {
	select {
	case <-t.stopped:
		return
	default:
	}
	close(t.done)
	<-t.stopped
}

// AddBytes records n additional processed bytes. Safe to call
// concurrently from multiple workers.
func (t *Tracker) AddBytes(n uint64) {
	if n > 0 {
		t.processed.Add(n)
	}
}

// Writer wraps w so that every successful write is also reported to
// the tracker, for callers that want byte-level rather than
// per-entry granularity.
func (t *Tracker) Writer(w io.Writer) io.Writer {
	return &countingWriter{t: t, w: w}
}

type countingWriter struct {
	t *Tracker
	w io.Writer
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	if n > 0 {
		c.t.AddBytes(uint64(n))
	}
	return n, err
}

func (t *Tracker) run() {
	defer close(t.stopped)
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	start := time.Now()
	var lastPrinted float64

	for {
		select {
		case <-ticker.C:
			t.tick(start, &lastPrinted)
		case <-t.done:
			t.final(start)
			return
		}
	}
}

func (t *Tracker) tick(start time.Time, lastPrinted *float64) {
	current := t.processed.Load()
	pct := float64(current) / float64(t.total) * 100
	if pct-*lastPrinted < 10 && time.Since(start).Seconds() < 1 {
		return
	}
	*lastPrinted = pct
	elapsed := time.Since(start).Seconds()
	if elapsed < 0.001 {
		elapsed = 0.001
	}
	rate := uint64(float64(current) / elapsed)
	fmt.Fprintf(t.out, "extracted %s of %s (%.1f%%) | rate %s\n",
		formatBytes(current), formatBytes(t.total), pct, formatRate(rate))
}

func (t *Tracker) final(start time.Time) {
	elapsed := time.Since(start).Seconds()
	if elapsed < 0.001 {
		elapsed = 0.001
	}
	current := t.processed.Load()
	avg := uint64(float64(current) / elapsed)
	fmt.Fprintf(t.out, "done: extracted %s in %.1fs (avg rate %s)\n",
		formatBytes(current), elapsed, formatRate(avg))
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func formatRate(bytesPerSec uint64) string {
	return formatBytes(bytesPerSec) + "/s"
}
