package remap

import "punzip/pkg/rpath"

// TempPath derives the on-disk staging path a worker should actually
// write to for name, given remapper f. When f leaves name unchanged,
// TempPath returns name itself — there is no staging.
//
// When f does change the path, TempPath folds a hash of the full
// original name into the remapped basename before returning it. This
// guards against the scenario spec.md §9 warns about: the 3-character
// extension hash used by the short-extension remapper is not
// cryptographic and can collide, and WorkPlan disjointness is only
// guaranteed over *final* names, not temporary ones — two entries
// with the same base name and different long extensions that happen
// to hash to the same three characters would otherwise stage to the
// identical temporary path and race.
func TempPath(f Func, name rpath.RelativePath) rpath.RelativePath {
	remapped := f(name)
	if remapped.Equal(name) {
		return name
	}
	dir, err := remapped.Dirname()
	if err != nil {
		dir = rpath.RelativePath{}
	}
	base, err := remapped.Basename()
	if err != nil {
		return remapped
	}
	guarded := insertGuard(base, guardToken(name.String()))
	return dir.Join(rpath.MustNew(guarded))
}

// insertGuard splits base on its last '.' (the remapped 3-character
// extension) and reinserts guard between the stem and that extension,
// e.g. "report.h1h2h3" + "ab3k" -> "report-ab3k.h1h2h3".
func insertGuard(base, guard string) string {
	for i := len(base) - 1; i >= 0; i-- {
		if base[i] == '.' {
			return base[:i] + "-" + guard + base[i:]
		}
	}
	return base + "-" + guard
}

func guardToken(fullOriginalName string) string {
	var h uint32 = 5381
	for i := 0; i < len(fullOriginalName); i++ {
		h = h*33 + uint32(fullOriginalName[i])
	}
	out := make([]byte, 4)
	out[0] = alphabet[h%uint32(len(alphabet))]
	out[1] = alphabet[(h>>6)%uint32(len(alphabet))]
	out[2] = alphabet[(h>>12)%uint32(len(alphabet))]
	out[3] = alphabet[(h>>18)%uint32(len(alphabet))]
	return string(out)
}
