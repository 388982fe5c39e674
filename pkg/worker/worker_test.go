package worker

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"punzip/pkg/remap"
)

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestRunExtractsAssignedEntries(t *testing.T) {
	data := buildZip(t, map[string]string{
		"a.txt":     "hello",
		"dir/b.txt": "world!",
	})
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dir"), 0o755))

	out := Run(Params{
		Index:      0,
		Buffer:     data,
		Indices:    []int{0, 1},
		ChunkSize:  4,
		Quiet:      true,
		Remap:      remap.New(false),
		OutputRoot: root,
	})

	require.True(t, out.Success)
	require.NoError(t, out.Err)
	require.Equal(t, 2, out.Files)
	require.EqualValues(t, 11, out.Bytes)
	require.Equal(t, 0, out.TmpRenames)

	gotA, err := os.ReadFile(filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	require.Equal(t, "hello", string(gotA))

	gotB, err := os.ReadFile(filepath.Join(root, "dir", "b.txt"))
	require.NoError(t, err)
	require.Equal(t, "world!", string(gotB))
}

func TestRunStagesLongExtensionsThenRenames(t *testing.T) {
	data := buildZip(t, map[string]string{
		"report.reallylongext": "contents",
	})
	root := t.TempDir()

	out := Run(Params{
		Index:      0,
		Buffer:     data,
		Indices:    []int{0},
		ChunkSize:  8,
		Quiet:      true,
		Remap:      remap.New(true),
		OutputRoot: root,
	})

	require.True(t, out.Success)
	require.Equal(t, 1, out.TmpRenames)

	got, err := os.ReadFile(filepath.Join(root, "report.reallylongext"))
	require.NoError(t, err)
	require.Equal(t, "contents", string(got))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestRunAppliesTimestampTransform(t *testing.T) {
	data := buildZip(t, map[string]string{"x.txt": "y"})
	root := t.TempDir()

	const fixedEpoch int64 = 1_700_000_000
	out := Run(Params{
		Index:      0,
		Buffer:     data,
		Indices:    []int{0},
		ChunkSize:  16,
		Quiet:      true,
		Remap:      remap.New(false),
		OutputRoot: root,
		Transform:  func(int64) int64 { return fixedEpoch },
	})
	require.True(t, out.Success)

	info, err := os.Stat(filepath.Join(root, "x.txt"))
	require.NoError(t, err)
	require.Equal(t, fixedEpoch, info.ModTime().Unix())
}

func TestRunFailsOnOutOfRangeIndex(t *testing.T) {
	data := buildZip(t, map[string]string{"x.txt": "y"})
	root := t.TempDir()

	out := Run(Params{
		Index:      0,
		Buffer:     data,
		Indices:    []int{5},
		ChunkSize:  16,
		Quiet:      true,
		Remap:      remap.New(false),
		OutputRoot: root,
	})
	require.False(t, out.Success)
	require.Error(t, out.Err)
}

func TestRunReportsWatchCompleted(t *testing.T) {
	data := buildZip(t, map[string]string{"x.txt": "y"})
	root := t.TempDir()

	out := Run(Params{
		Index:      0,
		Buffer:     data,
		Indices:    []int{0},
		ChunkSize:  16,
		Quiet:      true,
		Remap:      remap.New(false),
		OutputRoot: root,
	})
	require.True(t, out.Success)
	_, err := out.Watch.Milliseconds("unzip")
	require.NoError(t, err)
}
