// Package diag provides punzip's diagnostics model: a named-event
// Stopwatch and the Summary it feeds, grounded on the StopWatch and
// UnzipSummary structures of the original implementation and on the
// teacher repo's progress-formatting helpers.
package diag

import (
	"fmt"
	"sort"
	"time"

	"github.com/pkg/errors"
	"punzip/pkg/perr"
)

type interval struct {
	start  time.Time
	end    time.Time
	hasEnd bool
}

// Stopwatch tracks named start/stop events. It is not safe for
// concurrent use on the same instance from multiple goroutines; each
// worker owns its own Stopwatch, and the coordinator owns one for
// the pipeline's own phases.
type Stopwatch struct {
	events map[string]interval
}

// NewStopwatch returns an empty Stopwatch.
func NewStopwatch() *Stopwatch {
	return &Stopwatch{events: make(map[string]interval)}
}

// Start records "now" as the start of name, discarding any prior end
// time recorded for that name.
func (s *Stopwatch) Start(name string) {
	s.events[name] = interval{start: time.Now()}
}

// Stop records "now" as the end of name. It fails if name was never
// started.
func (s *Stopwatch) Stop(name string) error {
	iv, ok := s.events[name]
	if !ok {
		return errors.Wrapf(perr.ErrInvariant, "stopwatch: %q was never started", name)
	}
	iv.end = time.Now()
	iv.hasEnd = true
	s.events[name] = iv
	return nil
}

// Run starts name, invokes fn, and stops name regardless of whether
// fn returns an error, returning fn's error.
func (s *Stopwatch) Run(name string, fn func() error) error {
	s.Start(name)
	err := fn()
	_ = s.Stop(name)
	return err
}

func (s *Stopwatch) duration(name string) (time.Duration, error) {
	iv, ok := s.events[name]
	if !ok || !iv.hasEnd {
		return 0, errors.Wrapf(perr.ErrInvariant, "stopwatch: %q is not complete", name)
	}
	return iv.end.Sub(iv.start), nil
}

// Milliseconds returns the completed duration of name in milliseconds.
func (s *Stopwatch) Milliseconds(name string) (float64, error) {
	d, err := s.duration(name)
	if err != nil {
		return 0, err
	}
	return float64(d.Microseconds()) / 1000.0, nil
}

// Seconds returns the completed duration of name in seconds.
func (s *Stopwatch) Seconds(name string) (float64, error) {
	d, err := s.duration(name)
	if err != nil {
		return 0, err
	}
	return d.Seconds(), nil
}

// Minutes returns the completed duration of name in minutes.
func (s *Stopwatch) Minutes(name string) (float64, error) {
	d, err := s.duration(name)
	if err != nil {
		return 0, err
	}
	return d.Minutes(), nil
}

// Human formats the completed duration of name per spec.md §4.7:
// minutes+seconds when >= 1 minute, seconds with one decimal when
// >= 10s, seconds with fractional milliseconds when 1-10s, otherwise
// milliseconds.
func (s *Stopwatch) Human(name string) (string, error) {
	d, err := s.duration(name)
	if err != nil {
		return "", err
	}
	secs := d.Seconds()
	switch {
	case secs >= 60:
		m := int(secs) / 60
		rem := secs - float64(m*60)
		return fmt.Sprintf("%dm%.1fs", m, rem), nil
	case secs >= 10:
		return fmt.Sprintf("%.1fs", secs), nil
	case secs >= 1:
		return fmt.Sprintf("%.3fs", secs), nil
	default:
		return fmt.Sprintf("%.1fms", secs*1000), nil
	}
}

// Result is one completed event's name paired with its human-readable
// duration.
type Result struct {
	Name  string
	Human string
}

// Results returns every completed event as (name, human) pairs,
// sorted by name for deterministic output.
func (s *Stopwatch) Results() []Result {
	names := make([]string, 0, len(s.events))
	for name, iv := range s.events {
		if iv.hasEnd {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	out := make([]Result, 0, len(names))
	for _, name := range names {
		h, _ := s.Human(name)
		out = append(out, Result{Name: name, Human: h})
	}
	return out
}
