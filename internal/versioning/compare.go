// Package versioning orders component versions.
//
// Compare is the ordering used by the catalog, the aggregate merger and
// anything else that presents versions newest first. It is a pure function
// so it can be injected wherever ordering is needed.
package versioning

import (
	"slices"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparator returns a negative number when a sorts before b, zero when they
// are equal and a positive number otherwise.
type Comparator func(a, b string) int

// Compare orders versions newest first.
//
//   - equal strings compare equal
//   - a value is semantic when, without a leading "v", it contains a dot or
//     consists only of digits
//   - semantic values are ordered by descending semantic version precedence
//   - a non-semantic value sorts before every semantic value
//   - non-semantic values are ordered by ascending natural order
func Compare(a, b string) int {
	if a == b {
		return 0
	}
	semA, semB := IsSemantic(a), IsSemantic(b)
	switch {
	case semA && semB:
		return compareSemantic(a, b)
	case semA:
		return 1
	case semB:
		return -1
	default:
		return NaturalCompare(a, b)
	}
}

// Sort sorts versions in place using cmp, or Compare when cmp is nil.
func Sort(versions []string, cmp Comparator) {
	if cmp == nil {
		cmp = Compare
	}
	slices.SortStableFunc(versions, cmp)
}

// IsSemantic reports whether v looks like a semantic version.
func IsSemantic(v string) bool {
	v = strings.TrimPrefix(v, "v")
	if v == "" {
		return false
	}
	if strings.Contains(v, ".") {
		return true
	}
	return allDigits(v)
}

func compareSemantic(a, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	switch {
	case errA == nil && errB == nil:
		if c := vb.Compare(va); c != 0 {
			return c
		}
		// 1.0 and 1.0.0 share precedence but are distinct values.
		return NaturalCompare(a, b)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return NaturalCompare(b, a)
	}
}

// NaturalCompare compares strings by numeric collation, so "v2" sorts
// before "v10". Strings the collator considers equal fall back to byte order.
func NaturalCompare(a, b string) int {
	c := collators.Get().(*collate.Collator)
	defer collators.Put(c)
	if r := c.CompareString(a, b); r != 0 {
		return r
	}
	return strings.Compare(a, b)
}

// Collators keep iterator state and are not safe for concurrent use.
var collators = sync.Pool{
	New: func() any { return collate.New(language.Und, collate.Numeric) },
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
