// Package remap implements punzip's short-extension name remapper:
// a pure function from an archive path to a temporary on-disk path,
// used to stage files with unusually long extensions under a short
// alias while they are being written, per spec.md §4.5.
package remap

import "punzip/pkg/rpath"

// Func maps an archive path to the path that should actually be
// written to during extraction. Workers rename back to the original
// name once writing completes. Func must be a pure function of its
// input so that it can be called concurrently from multiple workers
// without synchronization.
type Func func(rpath.RelativePath) rpath.RelativePath

const (
	shortExtThreshold = 3
	alphabet          = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// New returns the identity function when enabled is false. When
// enabled, it returns a closure that replaces any extension longer
// than shortExtThreshold characters with a 3-character deterministic
// hash of that extension, leaving paths whose basename starts with
// '.' (dotfiles) or whose extension is already short untouched.
func New(enabled bool) Func {
	if !enabled {
		return identity
	}
	return remapLongExtensions
}

func identity(p rpath.RelativePath) rpath.RelativePath { return p }

func remapLongExtensions(p rpath.RelativePath) rpath.RelativePath {
	base, ext, split := p.SplitExt()
	// ext includes its leading '.', which does not count toward the
	// extension's length.
	if !split || len(ext)-1 <= shortExtThreshold {
		return p
	}
	return base.AddExt("." + hashExt(ext))
}

// hashExt computes a 32-bit multiplicative hash of ext and indexes
// three characters out of the 36-character a-z0-9 alphabet using
// successive bytes of the hash, per spec.md §4.5.
func hashExt(ext string) string {
	var h uint32 = 2166136261
	for i := 0; i < len(ext); i++ {
		h = (h * 16777619) ^ uint32(ext[i])
	}
	out := make([]byte, 3)
	out[0] = alphabet[h%uint32(len(alphabet))]
	out[1] = alphabet[(h>>8)%uint32(len(alphabet))]
	out[2] = alphabet[(h>>16)%uint32(len(alphabet))]
	return string(out)
}
