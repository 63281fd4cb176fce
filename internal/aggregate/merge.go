package aggregate

import (
	"slices"
	"strings"

	"git.home.luguber.info/inful/doccatalog/internal/versioning"
)

// Merge combines fragments that share a name and version. Descriptor
// fields set by later fragments override earlier ones; files and origins
// are concatenated in input order. The result is sorted by name, then by
// cmp (versioning.Compare when nil). Titles default to the name.
func Merge(fragments []*ComponentVersion, cmp versioning.Comparator) []*ComponentVersion {
	if cmp == nil {
		cmp = versioning.Compare
	}
	type groupKey struct{ name, version string }
	index := make(map[groupKey]*ComponentVersion, len(fragments))
	merged := make([]*ComponentVersion, 0, len(fragments))

	for _, frag := range fragments {
		key := groupKey{frag.Name, frag.Version}
		target, ok := index[key]
		if !ok {
			target = &ComponentVersion{Name: frag.Name, Version: frag.Version}
			index[key] = target
			merged = append(merged, target)
		}
		overlay(target, frag)
	}

	for _, cv := range merged {
		if cv.Title == "" {
			cv.Title = cv.Name
		}
	}
	slices.SortStableFunc(merged, func(a, b *ComponentVersion) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp(a.Version, b.Version)
	})
	return merged
}

func overlay(dst, src *ComponentVersion) {
	setIfNotEmpty(&dst.Title, src.Title)
	setIfNotEmpty(&dst.DisplayVersion, src.DisplayVersion)
	setIfNotEmpty(&dst.StartPage, src.StartPage)
	setIfNotEmpty(&dst.Prerelease, src.Prerelease)
	if src.Nav != nil {
		dst.Nav = src.Nav
	}
	dst.Files = append(dst.Files, src.Files...)
	dst.Origins = append(dst.Origins, src.Origins...)
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
