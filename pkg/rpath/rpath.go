// Package rpath implements RelativePath, an immutable value type for
// archive-relative paths. It is grounded on the FilePath class of the
// original implementation: an ordered list of non-empty components,
// never rooted, never containing backslashes.
package rpath

import (
	"strings"

	"github.com/pkg/errors"
	"punzip/pkg/perr"
)

// RelativePath is an ordered sequence of non-empty path components.
// The empty sequence represents the current directory. RelativePath
// values are immutable and safe to share across goroutines.
type RelativePath struct {
	components []string
}

// New parses s into a RelativePath. It rejects absolute paths (a
// leading '/'), any ':' or '\', and discards empty segments produced
// by repeated slashes. An empty string produces the empty path.
func New(s string) (RelativePath, error) {
	if s == "" {
		return RelativePath{}, nil
	}
	if strings.HasPrefix(s, "/") {
		return RelativePath{}, errors.Wrapf(perr.ErrBadArgument, "rooted path %q not supported", s)
	}
	if strings.ContainsAny(s, ":\\") {
		return RelativePath{}, errors.Wrapf(perr.ErrBadArgument, "path %q contains ':' or '\\'", s)
	}
	parts := strings.Split(s, "/")
	components := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			components = append(components, p)
		}
	}
	return RelativePath{components: components}, nil
}

// MustNew is like New but panics on error. Intended for tests and
// literal paths known to be valid at compile time.
func MustNew(s string) RelativePath {
	p, err := New(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String joins the components with '/'. The empty path yields "".
func (p RelativePath) String() string {
	return strings.Join(p.components, "/")
}

// Empty reports whether p has zero components.
func (p RelativePath) Empty() bool {
	return len(p.components) == 0
}

// Dirname returns the path with its last component removed. It fails
// if p is already empty. Dirname of a single-component path is the
// empty path, not ".".
func (p RelativePath) Dirname() (RelativePath, error) {
	if p.Empty() {
		return RelativePath{}, errors.Wrap(perr.ErrInvariant, "dirname of empty path")
	}
	out := make([]string, len(p.components)-1)
	copy(out, p.components[:len(p.components)-1])
	return RelativePath{components: out}, nil
}

// Basename returns the last component. It fails if p is empty.
func (p RelativePath) Basename() (string, error) {
	if p.Empty() {
		return "", errors.Wrap(perr.ErrInvariant, "basename of empty path")
	}
	return p.components[len(p.components)-1], nil
}

// AddExt appends ext to the last component, creating one (an empty
// string component) if p is currently empty. The caller supplies the
// leading '.' if one is wanted; AddExt never inserts it.
func (p RelativePath) AddExt(ext string) RelativePath {
	out := make([]string, len(p.components))
	copy(out, p.components)
	if len(out) == 0 {
		out = append(out, ext)
	} else {
		out[len(out)-1] = out[len(out)-1] + ext
	}
	return RelativePath{components: out}
}

// Join appends the components of other after p's own.
func (p RelativePath) Join(other RelativePath) RelativePath {
	out := make([]string, 0, len(p.components)+len(other.components))
	out = append(out, p.components...)
	out = append(out, other.components...)
	return RelativePath{components: out}
}

// SplitExt splits the last component on its final '.'. The dot stays
// with the left (base) side. It is a no-op — returning p, "", false —
// when p is empty, the basename has no '.', or the basename starts
// with '.' (e.g. ".gitignore" is not split).
func (p RelativePath) SplitExt() (base RelativePath, ext string, split bool) {
	if p.Empty() {
		return p, "", false
	}
	last := p.components[len(p.components)-1]
	if strings.HasPrefix(last, ".") {
		return p, "", false
	}
	idx := strings.LastIndex(last, ".")
	if idx < 0 {
		return p, "", false
	}
	out := make([]string, len(p.components))
	copy(out, p.components)
	out[len(out)-1] = last[:idx]
	return RelativePath{components: out}, last[idx:], true
}

// Components returns a defensive copy of the underlying components.
func (p RelativePath) Components() []string {
	out := make([]string, len(p.components))
	copy(out, p.components)
	return out
}

// Equal reports whether p and other have identical components.
func (p RelativePath) Equal(other RelativePath) bool {
	if len(p.components) != len(other.components) {
		return false
	}
	for i := range p.components {
		if p.components[i] != other.components[i] {
			return false
		}
	}
	return true
}
