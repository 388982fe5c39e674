// Package archive is punzip's façade over the ZIP container format.
// ZIP parsing and per-entry decompression are treated as an external
// collaborator per the design: this package wraps the standard
// library's archive/zip, which is the idiomatic Go answer to that
// contract (see DESIGN.md for why no third-party ZIP container parser
// from the retrieval pack was preferred over it).
//
// A single Archive is never assumed to be shareable across
// goroutines. Each worker opens its own Archive over the same shared
// byte buffer; the façade re-opens rather than reusing a handle, even
// though archive/zip.Reader happens to tolerate concurrent use today,
// because the design treats the underlying library as opaque.
package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"punzip/pkg/perr"
	"punzip/pkg/rpath"
)

// EntryMeta is the immutable metadata of one archive entry, cached at
// open time.
type EntryMeta struct {
	Index            int
	Name             string
	UncompressedSize uint64
	CompressedSize   uint64
	// Mtime is seconds since the epoch, with no timezone, as reported
	// by archive/zip: 2-second resolution when only the DOS time fields
	// are present, 1-second when the entry carries an extended
	// timestamp. No further truncation is applied.
	Mtime    int64
	IsFolder bool
}

// Folder returns the directory containing this entry: the entry
// itself if it is a folder, otherwise its dirname. The empty path
// means the archive root.
func (e EntryMeta) Folder() (rpath.RelativePath, error) {
	name := strings.TrimSuffix(e.Name, "/")
	p, err := rpath.New(name)
	if err != nil {
		return rpath.RelativePath{}, err
	}
	if e.IsFolder {
		return p, nil
	}
	return p.Dirname()
}

// Archive is an opened, read-only view over a ZIP file held entirely
// in memory. Its EntryMeta vector is immutable once Open returns.
type Archive struct {
	zr      *zip.Reader
	entries []EntryMeta
	byIndex []*zip.File
}

// Open parses the ZIP central directory out of buf and eagerly
// materializes metadata for every entry, in archive order.
func Open(buf []byte) (*Archive, error) {
	zr, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return nil, errors.Wrap(perr.ErrBadArchive, err.Error())
	}
	a := &Archive{zr: zr}
	for i, f := range zr.File {
		isFolder := strings.HasSuffix(f.Name, "/")
		a.entries = append(a.entries, EntryMeta{
			Index:            i,
			Name:             f.Name,
			UncompressedSize: f.UncompressedSize64,
			CompressedSize:   f.CompressedSize64,
			Mtime:            f.Modified.Unix(),
			IsFolder:         isFolder,
		})
		a.byIndex = append(a.byIndex, f)
	}
	return a, nil
}

// Entries returns a read-only view of the EntryMeta vector, in
// archive order.
func (a *Archive) Entries() []EntryMeta {
	return a.entries
}

// ExtractToFile decompresses entry idx in chunks of len(scratch) bytes
// and writes exactly that many bytes to destPath, which is opened for
// binary write, truncating any existing file. It fails unless the
// total bytes written equals the entry's declared uncompressed size.
func (a *Archive) ExtractToFile(idx int, destPath string, scratch []byte) error {
	if idx < 0 || idx >= len(a.byIndex) {
		return errors.Wrapf(perr.ErrInvariant, "entry index %d out of range", idx)
	}
	if len(scratch) == 0 {
		return errors.Wrap(perr.ErrInvariant, "scratch buffer must have length >= 1")
	}
	want := a.entries[idx].UncompressedSize

	rc, err := a.byIndex[idx].Open()
	if err != nil {
		return errors.Wrapf(perr.ErrBadArchive, "open entry %d: %v", idx, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrapf(perr.ErrIO, "create %s: %v", destPath, err)
	}
	defer out.Close()

	var total uint64
	for total < want {
		n, rErr := rc.Read(scratch)
		if n > 0 {
			if _, wErr := out.Write(scratch[:n]); wErr != nil {
				return errors.Wrapf(perr.ErrIO, "write %s: %v", destPath, wErr)
			}
			total += uint64(n)
		}
		if rErr != nil {
			if rErr == io.EOF {
				break
			}
			return errors.Wrapf(perr.ErrDecompress, "read entry %d: %v", idx, rErr)
		}
		if n == 0 {
			break
		}
	}
	if total != want {
		return errors.Wrapf(perr.ErrDecompress, "%s: expected %d bytes, got %d", destPath, want, total)
	}
	return nil
}
