// Package worker implements punzip's per-goroutine extraction loop,
// grounded on unzip_worker in the original implementation: each
// worker opens its own archive view over the shared buffer, allocates
// a chunk-sized scratch buffer, and streams its assigned entries to
// disk, renaming from a staged temporary name and applying a
// timestamp transform as the last two steps per entry.
package worker

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"punzip/pkg/archive"
	"punzip/pkg/diag"
	"punzip/pkg/perr"
	"punzip/pkg/progress"
	"punzip/pkg/remap"
	"punzip/pkg/rpath"
)

// Output is the data a worker reports back to the coordinator after
// join. It is written only by its owning worker and must only be
// read by the coordinator after the worker has finished.
type Output struct {
	Index      int
	Files      int
	Bytes      uint64
	TmpRenames int
	Watch      *diag.Stopwatch
	Success    bool
	Err        error
}

// Params bundles the fixed, per-worker inputs to Run.
type Params struct {
	Index      int
	Buffer     []byte
	Indices    []int
	ChunkSize  int
	Quiet      bool
	Transform  func(stored int64) int64
	Remap      remap.Func
	OutputRoot string
	Sink       *Sink
	Tracker    *progress.Tracker
}

// Run executes one worker's extraction loop to completion, never
// letting an error escape: any failure is captured in Output.Err and
// Output.Success is left false. The stopwatch's "unzip" event is
// always stopped before returning.
func Run(p Params) Output {
	out := Output{Index: p.Index, Watch: diag.NewStopwatch(), Success: false}
	out.Watch.Start("unzip")
	err := runLoop(p, &out)
	_ = out.Watch.Stop("unzip")
	if err != nil {
		out.Err = err
		out.Success = false
		return out
	}
	out.Success = true
	return out
}

func runLoop(p Params, out *Output) error {
	av, err := archive.Open(p.Buffer)
	if err != nil {
		return errors.Wrapf(err, "worker %d: open archive", p.Index)
	}
	if p.ChunkSize < 1 {
		return errors.Wrapf(perr.ErrInvariant, "worker %d: invalid chunk size %d", p.Index, p.ChunkSize)
	}
	scratch := make([]byte, p.ChunkSize)
	entries := av.Entries()

	for _, idx := range p.Indices {
		if idx < 0 || idx >= len(entries) {
			return errors.Wrapf(perr.ErrInvariant, "worker %d: entry index %d out of range", p.Index, idx)
		}
		meta := entries[idx]
		if meta.IsFolder {
			return errors.Wrapf(perr.ErrInvariant, "worker %d: entry %d (%s) is a folder, coordinator should never assign folders", p.Index, idx, meta.Name)
		}

		name, err := rpath.New(meta.Name)
		if err != nil {
			return errors.Wrapf(err, "worker %d: entry %d", p.Index, idx)
		}

		if !p.Quiet && p.Sink != nil {
			p.Sink.Printf("%d> %s\n", p.Index, meta.Name)
		}

		tmp := remap.TempPath(p.Remap, name)
		changed := !tmp.Equal(name)
		if changed {
			out.TmpRenames++
		}

		tmpDisk := toDiskPath(p.OutputRoot, tmp)
		if err := av.ExtractToFile(idx, tmpDisk, scratch); err != nil {
			return errors.Wrapf(err, "worker %d: extract %s", p.Index, meta.Name)
		}

		finalDisk := toDiskPath(p.OutputRoot, name)
		if changed {
			if err := replaceRename(tmpDisk, finalDisk); err != nil {
				return errors.Wrapf(err, "worker %d: rename %s -> %s", p.Index, tmpDisk, finalDisk)
			}
		}

		if p.Transform != nil {
			if t := p.Transform(meta.Mtime); t != 0 {
				ts := time.Unix(t, 0)
				if err := os.Chtimes(finalDisk, ts, ts); err != nil {
					return errors.Wrapf(perr.ErrIO, "worker %d: set mtime for %s: %v", p.Index, meta.Name, err)
				}
			}
		}

		out.Files++
		out.Bytes += meta.UncompressedSize
		if p.Tracker != nil {
			p.Tracker.AddBytes(meta.UncompressedSize)
		}
	}
	return nil
}

func toDiskPath(root string, p rpath.RelativePath) string {
	return filepath.Join(root, filepath.FromSlash(p.String()))
}

// replaceRename renames src to dst, overwriting dst if it already
// exists. This is a no-op guard for src == dst is the caller's
// responsibility (Run only calls this when the paths differ). On
// platforms where rename does not already replace the destination,
// the destination is removed first.
func replaceRename(src, dst string) error {
	if err := os.Rename(src, dst); err != nil {
		if os.IsExist(err) {
			if rmErr := os.Remove(dst); rmErr != nil {
				return errors.Wrapf(perr.ErrIO, "remove existing %s: %v", dst, rmErr)
			}
			if err := os.Rename(src, dst); err != nil {
				return errors.Wrapf(perr.ErrIO, "rename %s -> %s: %v", src, dst, err)
			}
			return nil
		}
		return errors.Wrapf(perr.ErrIO, "rename %s -> %s: %v", src, dst, err)
	}
	return nil
}
