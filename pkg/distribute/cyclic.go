package distribute

import "punzip/pkg/archive"

// cyclic assigns entry i (in input order) to worker i mod workers.
// Grounded on distribution_cyclic in the original implementation.
func cyclic(workers int, entries []archive.EntryMeta) (WorkPlan, error) {
	if err := mustPositive(workers); err != nil {
		return nil, err
	}
	plan := newEmptyPlan(workers)
	for i, e := range entries {
		w := i % workers
		plan[w] = append(plan[w], e.Index)
	}
	return plan, nil
}

func init() { register("cyclic", cyclic) }
