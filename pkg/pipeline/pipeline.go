// Package pipeline wires together distribute, fsutil, archive, remap
// and worker into the ten-stage extraction coordinator described by
// the design: load, classify, validate chunk size, build the name
// remapper, pre-create directories, plan, dispatch, join, aggregate,
// and return a diagnostics Summary. It is grounded on the main
// extraction routine of the original implementation and on the
// teacher repo's lib.Unzip/lib.Zip orchestration, rewritten around
// golang.org/x/sync/errgroup for worker dispatch in place of the
// teacher's raw sync.WaitGroup.
package pipeline

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"punzip/pkg/archive"
	"punzip/pkg/diag"
	"punzip/pkg/distribute"
	"punzip/pkg/fsutil"
	"punzip/pkg/option"
	"punzip/pkg/perr"
	"punzip/pkg/progress"
	"punzip/pkg/remap"
	"punzip/pkg/rpath"
	"punzip/pkg/worker"
)

const (
	// DefaultChunkSize is the CLI's chunk size when -c is not given.
	DefaultChunkSize = 4096
	minChunkSize     = 1
	maxChunkSize     = 1 << 30 // 1 GiB, generous upper bound against accidental huge allocations
)

// Request is the fully-resolved set of inputs to Run. A CLI front end
// is responsible for turning flags into this shape; Run itself knows
// nothing about flag parsing.
type Request struct {
	Filename     string
	Quiet        bool
	Workers      int
	Strategy     string
	ChunkSize    int
	Timestamp    option.TimestampPolicy
	OutputPrefix option.Optional[string]
	ShortExts    bool
	Diagnostics  bool
}

// Run executes the full extraction pipeline for req and returns the
// diagnostics Summary alongside any error. A non-nil error means
// extraction did not fully succeed; the Summary returned alongside it
// (if any) reflects whatever partial progress was made before the
// failure was detected.
func Run(ctx context.Context, req Request) (diag.Summary, error) {
	cw := diag.NewStopwatch()
	cw.Start("total")
	defer cw.Stop("total")

	summary := diag.Summary{
		Filename:      req.Filename,
		Coordinator:   cw,
		StrategyUsed:  req.Strategy,
		ChunkSizeUsed: req.ChunkSize,
	}

	workers := req.Workers
	if workers < 1 {
		return summary, errors.Wrapf(perr.ErrBadArgument, "worker count must be >= 1, got %d", workers)
	}
	summary.JobsUsed = workers

	chunkSize := req.ChunkSize
	if chunkSize < minChunkSize || chunkSize > maxChunkSize {
		return summary, errors.Wrapf(perr.ErrBadArgument, "chunk size %d out of range [%d, %d]", chunkSize, minChunkSize, maxChunkSize)
	}
	summary.ChunkSizeUsed = chunkSize

	var buf []byte
	if err := cw.Run("load_zip", func() error {
		var rErr error
		buf, rErr = os.ReadFile(req.Filename)
		if rErr != nil {
			return errors.Wrapf(perr.ErrIO, "read %s: %v", req.Filename, rErr)
		}
		return nil
	}); err != nil {
		return summary, err
	}

	var av *archive.Archive
	if err := cw.Run("open_zip", func() error {
		var oErr error
		av, oErr = archive.Open(buf)
		return oErr
	}); err != nil {
		return summary, err
	}

	allEntries := av.Entries()
	var files []archive.EntryMeta
	var folders []rpath.RelativePath
	var maxSize uint64
	for _, e := range allEntries {
		if e.IsFolder {
			p, err := e.Folder()
			if err != nil {
				return summary, err
			}
			folders = append(folders, p)
			continue
		}
		files = append(files, e)
		if e.UncompressedSize > maxSize {
			maxSize = e.UncompressedSize
		}
	}
	summary.Files = len(files)
	summary.Folders = len(folders)
	summary.MaxEntrySize = maxSize

	remapper := remap.New(req.ShortExts)

	outputRoot := req.Filename
	if prefix, ok := req.OutputPrefix.Get(); ok {
		outputRoot = prefix
	} else {
		outputRoot = stripZipExt(outputRoot)
	}
	if err := os.MkdirAll(outputRoot, 0o755); err != nil {
		return summary, errors.Wrapf(perr.ErrIO, "create output root %s: %v", outputRoot, err)
	}

	if err := cw.Run("mkdirs", func() error {
		dirsNeeded := collectDirs(files, folders)
		return fsutil.New(outputRoot).EnsureDirs(dirsNeeded)
	}); err != nil {
		return summary, err
	}

	strat, err := distribute.Lookup(req.Strategy)
	if err != nil {
		return summary, err
	}

	var plan distribute.WorkPlan
	if err := cw.Run("plan", func() error {
		var pErr error
		plan, pErr = strat(workers, files)
		return pErr
	}); err != nil {
		return summary, err
	}

	transform := req.Timestamp
	if transform == nil {
		transform = option.Verbatim{}
	}
	xform := transform.Transform()

	var sink *worker.Sink
	if !req.Quiet {
		sink = worker.NewSink(os.Stderr)
	}

	var totalBytes uint64
	for _, e := range files {
		totalBytes += e.UncompressedSize
	}
	tracker := progress.New(totalBytes, req.Quiet, os.Stderr)
	tracker.Start()

	outputs := make([]worker.Output, workers)
	if err := cw.Run("extract", func() error {
		g, _ := errgroup.WithContext(ctx)
		for i := 0; i < workers; i++ {
			i := i
			g.Go(func() error {
				outputs[i] = worker.Run(worker.Params{
					Index:      i,
					Buffer:     buf,
					Indices:    plan[i],
					ChunkSize:  chunkSize,
					Quiet:      req.Quiet,
					Transform:  xform,
					Remap:      remapper,
					OutputRoot: outputRoot,
					Sink:       sink,
					Tracker:    tracker,
				})
				return nil
			})
		}
		return g.Wait()
	}); err != nil {
		tracker.Stop()
		return summary, err
	}
	tracker.Stop()

	summary.PerWorkerFiles = make([]int, workers)
	summary.PerWorkerBytes = make([]uint64, workers)
	summary.PerWorker = make([]*diag.Stopwatch, workers)

	var totalFiles int
	var totalTmp int
	for i, out := range outputs {
		summary.PerWorkerFiles[i] = out.Files
		summary.PerWorkerBytes[i] = out.Bytes
		summary.PerWorker[i] = out.Watch
		totalFiles += out.Files
		totalTmp += out.TmpRenames
		if !out.Success {
			return summary, errors.Wrapf(perr.ErrWorker, "worker %d: %v", out.Index, out.Err)
		}
	}
	summary.NumTempNames = totalTmp

	if totalFiles != len(files) {
		return summary, errors.Wrapf(perr.ErrInvariant, "workers extracted %d files, plan covered %d", totalFiles, len(files))
	}

	return summary, nil
}

// collectDirs returns the set of directories that must exist before
// extraction starts: every folder entry plus every file's containing
// directory, deduplicated while preserving first-seen order.
func collectDirs(files []archive.EntryMeta, folders []rpath.RelativePath) []rpath.RelativePath {
	seen := make(map[string]struct{})
	var out []rpath.RelativePath
	add := func(p rpath.RelativePath) {
		key := p.String()
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	for _, f := range folders {
		add(f)
	}
	for _, e := range files {
		p, err := rpath.New(e.Name)
		if err != nil {
			continue
		}
		if p.Empty() {
			continue
		}
		dir, err := p.Dirname()
		if err != nil {
			continue
		}
		add(dir)
	}
	return out
}

// stripZipExt derives an output directory name from a ZIP filename by
// removing its trailing ".zip" extension (case-sensitive), matching
// the original implementation's default. The filename is used
// unchanged if it has no such extension.
func stripZipExt(filename string) string {
	const ext = ".zip"
	if len(filename) > len(ext) && filename[len(filename)-len(ext):] == ext {
		return filename[:len(filename)-len(ext)]
	}
	return filename
}
