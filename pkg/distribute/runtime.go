package distribute

import "punzip/pkg/archive"

// runtimeWeights encode the estimated fixed per-file overhead against
// the estimated per-byte cost of writing a file, calibrated (up to
// proportionality) in the original implementation.
const (
	runtimeSizeWeight uint64 = 1
	runtimeFileWeight uint64 = 5_000_000
)

// runtimeStrategy is the same greedy assignment as bytesStrategy, but
// the running metric per worker weights a fixed per-file cost against
// the per-byte cost, approximating wall-clock runtime rather than raw
// byte count.
//
// Grounded on distribution_runtime in the original implementation.
func runtimeStrategy(workers int, entries []archive.EntryMeta) (WorkPlan, error) {
	if err := mustPositive(workers); err != nil {
		return nil, err
	}
	sorted := sortedBySize(entries)
	plan := newEmptyPlan(workers)
	totals := make([]uint64, workers)
	for _, e := range sorted {
		where := argmin(totals)
		plan[where] = append(plan[where], e.Index)
		totals[where] += runtimeSizeWeight*e.UncompressedSize + runtimeFileWeight
	}
	return plan, nil
}

func init() { register("runtime", runtimeStrategy) }
