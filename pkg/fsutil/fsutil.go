// Package fsutil provides idempotent, recursive directory
// pre-creation, grounded on the original implementation's
// mkdir_p/mkdirs_p: a memoized cache of paths already known to exist
// avoids redundant stat/mkdir calls when many entries share ancestor
// directories.
package fsutil

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"punzip/pkg/perr"
	"punzip/pkg/rpath"
)

// Creator memoizes which directories are already known to exist on
// disk, under a given root. It is safe for reuse across calls, but is
// intended to be used exclusively from the pipeline coordinator
// during a single run — it is not meant to be shared between workers.
type Creator struct {
	root  string
	known map[string]struct{}
}

// New returns a Creator that resolves relative paths against root.
func New(root string) *Creator {
	return &Creator{root: root, known: make(map[string]struct{})}
}

// EnsureDirs creates every directory named by paths, and all of their
// ancestors, idempotently. The empty path is a no-op.
func (c *Creator) EnsureDirs(paths []rpath.RelativePath) error {
	for _, p := range paths {
		if err := c.ensure(p); err != nil {
			return err
		}
	}
	return nil
}

func (c *Creator) ensure(p rpath.RelativePath) error {
	if p.Empty() {
		return nil
	}
	key := p.String()
	if _, ok := c.known[key]; ok {
		return nil
	}
	parent, err := p.Dirname()
	if err != nil {
		return errors.Wrap(perr.ErrInvariant, "dirname of non-empty path failed")
	}
	if err := c.ensure(parent); err != nil {
		return err
	}

	full := filepath.Join(c.root, filepath.FromSlash(key))
	info, err := os.Stat(full)
	switch {
	case err == nil:
		if !info.IsDir() {
			return errors.Wrapf(perr.ErrIO, "%s exists but is not a directory", full)
		}
	case os.IsNotExist(err):
		if mkErr := os.Mkdir(full, 0o755); mkErr != nil && !os.IsExist(mkErr) {
			return errors.Wrapf(perr.ErrIO, "mkdir %s: %v", full, mkErr)
		}
	default:
		return errors.Wrapf(perr.ErrIO, "stat %s: %v", full, err)
	}
	c.known[key] = struct{}{}
	return nil
}
