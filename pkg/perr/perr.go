// Package perr defines the error-kind taxonomy used throughout
// punzip, grounded on the error kinds enumerated in the design of the
// original extractor: bad arguments, bad archive metadata, unknown
// strategies, invalid work plans, I/O failures, decompression size
// mismatches, worker failures, and internal invariant violations.
//
// Each kind is a sentinel value. Call sites wrap it with context
// using github.com/pkg/errors so that errors.Is/errors.As still see
// through the wrapping to the underlying sentinel.
package perr

import "github.com/pkg/errors"

// Kind is a sentinel error identifying one of punzip's error classes.
type Kind error

var (
	// ErrBadArgument covers malformed CLI input or numeric parse failures.
	ErrBadArgument Kind = errors.New("bad argument")
	// ErrBadArchive covers ZIP open or per-entry metadata failures.
	ErrBadArchive Kind = errors.New("bad archive")
	// ErrBadStrategy covers an unknown distribution strategy name.
	ErrBadStrategy Kind = errors.New("bad strategy")
	// ErrBadPlan covers a work plan that fails validation.
	ErrBadPlan Kind = errors.New("bad plan")
	// ErrIO covers stat/mkdir/open/read/write/rename/set-mtime failures.
	ErrIO Kind = errors.New("io failure")
	// ErrDecompress covers a decompressed byte count mismatch.
	ErrDecompress Kind = errors.New("decompress failure")
	// ErrWorker covers a worker reporting failure to the coordinator.
	ErrWorker Kind = errors.New("worker failure")
	// ErrInvariant covers internal assertion failures.
	ErrInvariant Kind = errors.New("invariant violation")
)

// Is reports whether err is, or wraps, the given Kind.
func Is(err error, kind Kind) bool {
	return errors.Is(err, kind)
}
