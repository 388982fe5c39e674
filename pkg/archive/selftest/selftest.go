// Package selftest generates synthetic ZIP fixtures for benchmarking
// punzip's distribution strategies against skewed, large corpora
// without checking megabytes of binary fixtures into the repository.
//
// Payload bytes are produced by round-tripping a small seed through
// github.com/pierrec/lz4/v4: LZ4-compressing a short repeating seed
// and then decompressing it again yields a deterministic, cheaply
// generated byte stream with realistic internal redundancy, which is
// a better stand-in for real file content than all-zero or
// all-random buffers when measuring how distribution strategies
// behave on more than a handful of entries.
//
// LZ4 is never used as the ZIP storage method itself — entries are
// written with the Store (uncompressed) method, since archive/zip
// only supports Store and Deflate as registered compressors and
// teaching it a third, LZ4-backed method is out of scope here.
package selftest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// Spec describes one synthetic entry to add to a generated fixture.
type Spec struct {
	Name string
	Size int
}

// Build returns a complete ZIP archive, in memory, containing one
// Store-method entry per Spec, each filled with Size bytes of
// LZ4-round-tripped filler content.
func Build(specs []Spec) ([]byte, error) {
	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	for _, s := range specs {
		payload, err := filler(s.Size)
		if err != nil {
			return nil, fmt.Errorf("selftest: generate filler for %s: %w", s.Name, err)
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: s.Name, Method: zip.Store})
		if err != nil {
			return nil, fmt.Errorf("selftest: create %s: %w", s.Name, err)
		}
		if _, err := w.Write(payload); err != nil {
			return nil, fmt.Errorf("selftest: write %s: %w", s.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("selftest: close writer: %w", err)
	}
	return out.Bytes(), nil
}

// filler produces n bytes of deterministic, internally-redundant
// content by compressing a repeating seed with LZ4 and decompressing
// the result back out, repeating as needed to reach n bytes.
func filler(n int) ([]byte, error) {
	if n <= 0 {
		return []byte{}, nil
	}
	const seed = "punzip-selftest-fixture-seed-bytes "
	raw := bytes.Repeat([]byte(seed), n/len(seed)+1)

	var compressed bytes.Buffer
	zw := lz4.NewWriter(&compressed)
	if _, err := zw.Write(raw); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	zr := lz4.NewReader(&compressed)
	out := make([]byte, n)
	if _, err := io.ReadFull(zr, out); err != nil {
		return nil, fmt.Errorf("round-trip filler: %w", err)
	}
	return out, nil
}
