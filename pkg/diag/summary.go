package diag

import (
	"fmt"
	"io"
	"strings"
)

// Summary aggregates the post-run record produced by the pipeline
// coordinator, grounded on the original implementation's
// UnzipSummary.
type Summary struct {
	Filename      string
	JobsUsed      int
	StrategyUsed  string
	ChunkSizeUsed int

	Files          int
	Folders        int
	NumTempNames   int
	MaxEntrySize   uint64
	PerWorkerFiles []int
	PerWorkerBytes []uint64

	Coordinator *Stopwatch
	PerWorker   []*Stopwatch
}

// WriteTo pretty-prints the summary as a fixed-label table, ending
// with the "total" coordinator event, per spec.md §4.7.
func (s Summary) WriteTo(w io.Writer) {
	fmt.Fprintf(w, "filename:    %s\n", s.Filename)
	fmt.Fprintf(w, "jobs:        %d\n", s.JobsUsed)
	fmt.Fprintf(w, "strategy:    %s\n", s.StrategyUsed)
	fmt.Fprintf(w, "chunk:       %s\n", FormatBytes(uint64(s.ChunkSizeUsed)))
	fmt.Fprintf(w, "files:       %d\n", s.Files)
	fmt.Fprintf(w, "folders:     %d\n", s.Folders)
	fmt.Fprintf(w, "tmp-names:   %d\n", s.NumTempNames)
	fmt.Fprintf(w, "max entry:   %s\n", FormatBytes(s.MaxEntrySize))

	for i := range s.PerWorkerFiles {
		human := "n/a"
		if i < len(s.PerWorker) && s.PerWorker[i] != nil {
			if h, err := s.PerWorker[i].Human("unzip"); err == nil {
				human = h
			}
		}
		fmt.Fprintf(w, "worker %-3d: %6d files, %10s, %s\n",
			i, s.PerWorkerFiles[i], FormatBytes(s.PerWorkerBytes[i]), human)
	}

	var totalEvents []Result
	var totalResult *Result
	if s.Coordinator != nil {
		for _, r := range s.Coordinator.Results() {
			if r.Name == "total" {
				cp := r
				totalResult = &cp
				continue
			}
			totalEvents = append(totalEvents, r)
		}
	}
	for _, r := range totalEvents {
		fmt.Fprintf(w, "%-11s: %s\n", r.Name, r.Human)
	}
	if totalResult != nil {
		fmt.Fprintf(w, "%-11s: %s\n", "total", totalResult.Human)
	}
}

// String renders WriteTo's output to a string.
func (s Summary) String() string {
	var b strings.Builder
	s.WriteTo(&b)
	return b.String()
}
