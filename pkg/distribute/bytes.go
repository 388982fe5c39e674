package distribute

import "punzip/pkg/archive"

// bytesStrategy sorts entries descending by uncompressed size, then
// greedily assigns each to the worker with the smallest running sum
// of bytes so far, ties broken by lowest worker index.
//
// Grounded on distribution_bytes in the original implementation.
func bytesStrategy(workers int, entries []archive.EntryMeta) (WorkPlan, error) {
	if err := mustPositive(workers); err != nil {
		return nil, err
	}
	sorted := sortedBySize(entries)
	plan := newEmptyPlan(workers)
	totals := make([]uint64, workers)
	for _, e := range sorted {
		where := argmin(totals)
		plan[where] = append(plan[where], e.Index)
		totals[where] += e.UncompressedSize
	}
	return plan, nil
}

func init() { register("bytes", bytesStrategy) }
