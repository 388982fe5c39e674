package distribute

import "punzip/pkg/archive"

// sliced sorts entries by ascending name, then divides the sorted
// list into `workers` contiguous chunks of size max(1, n/workers),
// assigning the i-th chunk to worker i. Any residual entries (n mod
// workers of them, left over after the contiguous chunks) are
// distributed cyclically over all workers by their position in the
// full sorted list, rather than restarting the cycle at zero — this
// is the intent spec.md documents, avoiding the slot-collision defect
// flagged as a possible source bug (see DESIGN.md).
//
// Grounded on distribution_sliced in the original implementation.
func sliced(workers int, entries []archive.EntryMeta) (WorkPlan, error) {
	if err := mustPositive(workers); err != nil {
		return nil, err
	}
	sorted := sortedByName(entries)
	n := len(sorted)
	plan := newEmptyPlan(workers)
	if n == 0 {
		return plan, nil
	}

	chunk := n / workers
	if chunk < 1 {
		chunk = 1
	}
	residual := n % workers
	slicedEnd := n - residual

	for count, e := range sorted {
		var where int
		if count < slicedEnd {
			where = count / chunk
			if where >= workers {
				where = workers - 1
			}
		} else {
			where = count % workers
		}
		plan[where] = append(plan[where], e.Index)
	}
	return plan, nil
}

func init() { register("sliced", sliced) }
