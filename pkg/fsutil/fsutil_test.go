package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"punzip/pkg/rpath"
)

func TestEnsureDirsCreatesAncestors(t *testing.T) {
	root := t.TempDir()
	c := New(root)
	err := c.EnsureDirs([]rpath.RelativePath{rpath.MustNew("a/b/c")})
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(root, "a", "b", "c"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureDirsIdempotent(t *testing.T) {
	root := t.TempDir()
	c := New(root)
	paths := []rpath.RelativePath{rpath.MustNew("x/y")}
	require.NoError(t, c.EnsureDirs(paths))
	require.NoError(t, c.EnsureDirs(paths))

	info, err := os.Stat(filepath.Join(root, "x", "y"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureDirsEmptyPathIsNoop(t *testing.T) {
	root := t.TempDir()
	c := New(root)
	require.NoError(t, c.EnsureDirs([]rpath.RelativePath{{}}))
}

func TestEnsureDirsFailsOnFileCollision(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "blocked"), []byte("x"), 0o644))

	c := New(root)
	err := c.EnsureDirs([]rpath.RelativePath{rpath.MustNew("blocked/child")})
	require.Error(t, err)
}

func TestEnsureDirsSharedAncestors(t *testing.T) {
	root := t.TempDir()
	c := New(root)
	paths := []rpath.RelativePath{
		rpath.MustNew("shared/one"),
		rpath.MustNew("shared/two"),
	}
	require.NoError(t, c.EnsureDirs(paths))

	for _, sub := range []string{"one", "two"} {
		info, err := os.Stat(filepath.Join(root, "shared", sub))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
