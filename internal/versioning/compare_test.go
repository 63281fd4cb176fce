package versioning

import (
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func TestCompare_EqualStrings(t *testing.T) {
	for _, v := range []string{"1.0", "master", "v2", "10"} {
		assert.Equal(t, 0, Compare(v, v), v)
	}
}

func TestCompare_SemanticIsDescending(t *testing.T) {
	pairs := [][2]string{
		{"2.0.0", "10.0.0"},
		{"1.0", "1.1"},
		{"v1.0.0", "v2.0.0"},
		{"1.0.0-beta.1", "1.0.0"},
		{"9", "10"},
	}
	for _, p := range pairs {
		a, b := p[0], p[1]
		va := semver.MustParse(a)
		vb := semver.MustParse(b)
		assert.Equal(t, -sign(va.Compare(vb)), sign(Compare(a, b)), "%s vs %s", a, b)
		assert.Equal(t, -sign(vb.Compare(va)), sign(Compare(b, a)), "%s vs %s", b, a)
	}
}

func TestCompare_NonSemanticIsNewer(t *testing.T) {
	for _, ns := range []string{"master", "main", "next", "v", "latest"} {
		for _, s := range []string{"1.0", "2", "v3.1.4", "0.0.1"} {
			assert.Equal(t, -1, Compare(ns, s), "%s vs %s", ns, s)
			assert.Equal(t, 1, Compare(s, ns), "%s vs %s", s, ns)
		}
	}
}

func TestCompare_NonSemanticNaturalOrder(t *testing.T) {
	assert.Negative(t, Compare("dev2", "dev10"))
	assert.Positive(t, Compare("main", "develop"))
}

func TestSort(t *testing.T) {
	versions := []string{"1.0", "master", "10.0", "2.0", "dev", "v1.5.0"}
	Sort(versions, nil)
	assert.Equal(t, []string{"dev", "master", "10.0", "2.0", "v1.5.0", "1.0"}, versions)
}

// TestCompare_TotalOrder checks antisymmetry and transitivity over a mixed set.
func TestCompare_TotalOrder(t *testing.T) {
	values := []string{
		"master", "main", "dev2", "dev10", "1.0", "1.0.0", "v1.0.0", "2.0", "10.0",
		"1.2.3.4", "1.x", "3", "v3", "1.0.0-rc.1", "next",
	}
	for _, a := range values {
		for _, b := range values {
			ab, ba := sign(Compare(a, b)), sign(Compare(b, a))
			require.Equal(t, -ab, ba, "antisymmetry %s %s", a, b)
			if a != b {
				require.NotZero(t, ab, "distinct values %s %s compare equal", a, b)
			}
			for _, c := range values {
				if Compare(a, b) < 0 && Compare(b, c) < 0 {
					require.Negative(t, Compare(a, c), "transitivity %s < %s < %s", a, b, c)
				}
			}
		}
	}
}

func TestNaturalCompare(t *testing.T) {
	assert.Negative(t, NaturalCompare("v2", "v10"))
	assert.Negative(t, NaturalCompare("release-9", "release-10"))
	assert.Negative(t, NaturalCompare("dev", "main"))
	assert.Positive(t, NaturalCompare("b", "a"))
	assert.Negative(t, NaturalCompare("a", "ab"))
	assert.Zero(t, NaturalCompare("x", "x"))
}

// TestNaturalCompare_ByteOrderTieBreak covers strings the numeric collator
// weighs the same; they must still compare unequal and antisymmetric.
func TestNaturalCompare_ByteOrderTieBreak(t *testing.T) {
	pairs := [][2]string{{"a01", "a1"}, {"v007", "v7"}, {"A-0001", "A-1"}}
	for _, p := range pairs {
		a, b := p[0], p[1]
		require.NotZero(t, NaturalCompare(a, b), "%s vs %s", a, b)
		assert.Equal(t, -sign(NaturalCompare(a, b)), sign(NaturalCompare(b, a)), "%s vs %s", b, a)
	}
}

func TestNaturalCompare_Concurrent(t *testing.T) {
	var g errgroup.Group
	for range 8 {
		g.Go(func() error {
			for range 200 {
				if NaturalCompare("feature-2", "feature-10") >= 0 {
					return assert.AnError
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestIsSemantic(t *testing.T) {
	assert.True(t, IsSemantic("1.0"))
	assert.True(t, IsSemantic("42"))
	assert.True(t, IsSemantic("v42"))
	assert.False(t, IsSemantic("master"))
	assert.False(t, IsSemantic("v"))
	assert.False(t, IsSemantic(""))
}
