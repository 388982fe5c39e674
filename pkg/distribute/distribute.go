// Package distribute implements punzip's partitioning subsystem: a
// process-wide registry of named strategies, each mapping a worker
// count and a list of file entries to a WorkPlan, plus a validator
// that every strategy is wrapped in.
//
// Registration happens via init() functions in each strategy's file,
// which is the Go-native analogue of the original implementation's
// STRATEGY(name) macro that ran static-initialization code to
// populate a global map at process start.
package distribute

import (
	"sort"

	"github.com/pkg/errors"
	"punzip/pkg/archive"
	"punzip/pkg/perr"
)

// WorkPlan is a partition of file-entry indices across workers. Its
// length always equals the requested worker count.
type WorkPlan [][]int

// Strategy maps a worker count and a list of non-folder entries to a
// WorkPlan.
type Strategy func(workers int, entries []archive.EntryMeta) (WorkPlan, error)

var registry = make(map[string]Strategy)

// register adds a strategy under name, wrapped in the validator so
// that every call through Lookup is checked, regardless of which
// strategy produced it.
func register(name string, raw Strategy) {
	registry[name] = func(workers int, entries []archive.EntryMeta) (WorkPlan, error) {
		plan, err := raw(workers, entries)
		if err != nil {
			return nil, err
		}
		if err := validate(plan, workers, entries); err != nil {
			return nil, err
		}
		return plan, nil
	}
}

// Lookup returns the validated strategy registered under name, or
// ErrBadStrategy if none is registered.
func Lookup(name string) (Strategy, error) {
	s, ok := registry[name]
	if !ok {
		return nil, errors.Wrapf(perr.ErrBadStrategy, "unknown strategy %q", name)
	}
	return s, nil
}

// Names returns the sorted list of registered strategy names, useful
// for usage text and tests.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// validate asserts the three invariants spec'd for every WorkPlan:
// completeness (every entry index appears exactly once), disjointness
// (no index appears twice), and width (len(plan) == workers).
func validate(plan WorkPlan, workers int, entries []archive.EntryMeta) error {
	if len(plan) != workers {
		return errors.Wrapf(perr.ErrBadPlan, "plan width %d != workers %d", len(plan), workers)
	}
	seen := make(map[int]struct{}, len(entries))
	count := 0
	for _, list := range plan {
		for _, idx := range list {
			if _, dup := seen[idx]; dup {
				return errors.Wrapf(perr.ErrBadPlan, "index %d assigned more than once", idx)
			}
			seen[idx] = struct{}{}
			count++
		}
	}
	if count != len(entries) {
		return errors.Wrapf(perr.ErrBadPlan, "plan covers %d indices, want %d", count, len(entries))
	}
	for _, e := range entries {
		if _, ok := seen[e.Index]; !ok {
			return errors.Wrapf(perr.ErrBadPlan, "entry index %d missing from plan", e.Index)
		}
	}
	return nil
}

// sortedBySize returns a copy of entries sorted by descending
// uncompressed size, used by the bytes and runtime strategies.
func sortedBySize(entries []archive.EntryMeta) []archive.EntryMeta {
	out := make([]archive.EntryMeta, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UncompressedSize > out[j].UncompressedSize
	})
	return out
}

// sortedByName returns a copy of entries sorted ascending by name.
func sortedByName(entries []archive.EntryMeta) []archive.EntryMeta {
	out := make([]archive.EntryMeta, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// argmin returns the index of the smallest element of totals, with
// ties broken by the lowest index.
func argmin(totals []uint64) int {
	best := 0
	for i := 1; i < len(totals); i++ {
		if totals[i] < totals[best] {
			best = i
		}
	}
	return best
}

func newEmptyPlan(workers int) WorkPlan {
	plan := make(WorkPlan, workers)
	for i := range plan {
		plan[i] = []int{}
	}
	return plan
}

func mustPositive(workers int) error {
	if workers < 1 {
		return errors.Wrapf(perr.ErrInvariant, "worker count must be >= 1, got %d", workers)
	}
	return nil
}
