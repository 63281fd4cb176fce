package git

import (
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/doccatalog/internal/content"
	"git.home.luguber.info/inful/doccatalog/internal/testutil/testutils"
)

func refNames(refs []Ref) []string {
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, r.Name)
	}
	return names
}

func handleFor(repo *testutils.TestRepo) *Handle {
	return &Handle{Repo: repo.Repo, URL: repo.Dir, Dir: repo.Dir}
}

func TestSelectRefs_BranchPattern(t *testing.T) {
	repo := testutils.NewTestRepo(t)
	repo.Commit("init", map[string]string{"antora.yml": "name: docs\n"})
	for _, b := range []string{"unknown", "v1.0.0", "v2.0.0", "v3.0.0"} {
		repo.Branch(b)
	}

	refs, err := SelectRefs(handleFor(repo), "origin", []string{"v*"}, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"v1.0.0", "v2.0.0", "v3.0.0"}, refNames(refs))
	for _, r := range refs {
		assert.Equal(t, content.RefTypeBranch, r.Type)
		assert.False(t, r.IsHead)
	}
}

func TestSelectRefs_HeadResolvesToCurrentBranch(t *testing.T) {
	repo := testutils.NewTestRepo(t)
	repo.Commit("init", map[string]string{"antora.yml": "name: docs\n"})
	repo.Branch("v1.0")

	for _, pattern := range []string{"HEAD", "."} {
		refs, err := SelectRefs(handleFor(repo), "origin", []string{pattern}, nil)
		require.NoError(t, err)
		require.Len(t, refs, 1)
		assert.Equal(t, "main", refs[0].Name)
		assert.Equal(t, "refs/heads/main", refs[0].QualifiedName)
		assert.True(t, refs[0].IsHead)
		assert.False(t, refs[0].Detached())
	}
}

func TestSelectRefs_DetachedHead(t *testing.T) {
	repo := testutils.NewTestRepo(t)
	repo.Commit("init", map[string]string{"antora.yml": "name: docs\n"})
	repo.Branch("v1.0")
	repo.Detach()

	refs, err := SelectRefs(handleFor(repo), "origin", []string{"HEAD"}, nil)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "HEAD", refs[0].Name)
	assert.True(t, refs[0].Detached())
	assert.True(t, refs[0].IsHead)
	assert.Equal(t, repo.Head(), refs[0].Hash)

	refs, err = SelectRefs(handleFor(repo), "origin", []string{"HEAD", "v*"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"HEAD", "v1.0"}, refNames(refs))
}

func TestSelectRefs_Tags(t *testing.T) {
	repo := testutils.NewTestRepo(t)
	repo.Commit("init", map[string]string{"antora.yml": "name: docs\n"})
	repo.Tag("v1.0", false)
	repo.Tag("v2.0", true)
	repo.Tag("v2.1-beta", false)

	refs, err := SelectRefs(handleFor(repo), "origin", nil, []string{"v*", "!*-beta"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"v1.0", "v2.0"}, refNames(refs))
	for _, r := range refs {
		assert.Equal(t, content.RefTypeTag, r.Type)
		assert.Equal(t, "refs/tags/"+r.Name, r.QualifiedName)
	}
}

func TestSelectRefs_TagAndBranchWithSameName(t *testing.T) {
	repo := testutils.NewTestRepo(t)
	repo.Commit("init", map[string]string{"antora.yml": "name: docs\n"})
	repo.Branch("v1.0")
	repo.Tag("v1.0", false)

	refs, err := SelectRefs(handleFor(repo), "origin", []string{"v1.0"}, []string{"v1.0"})
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, content.RefTypeTag, refs[0].Type)
	assert.Equal(t, content.RefTypeBranch, refs[1].Type)
}

func TestSelectRefs_NoMatchIsEmpty(t *testing.T) {
	repo := testutils.NewTestRepo(t)
	repo.Commit("init", map[string]string{"antora.yml": "name: docs\n"})

	refs, err := SelectRefs(handleFor(repo), "origin", []string{"release/*"}, []string{"v*"})
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestSelectRefs_LocalBranchWinsInWorkingRepository(t *testing.T) {
	repo := testutils.NewTestRepo(t)
	first := repo.Commit("init", map[string]string{"antora.yml": "name: docs\n"})
	repo.Commit("second", map[string]string{"a.adoc": "a"})
	remoteRef := plumbing.NewHashReference(plumbing.NewRemoteReferenceName("origin", "main"), first)
	require.NoError(t, repo.Repo.Storer.SetReference(remoteRef))

	refs, err := SelectRefs(handleFor(repo), "origin", []string{"main"}, nil)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "refs/heads/main", refs[0].QualifiedName)
	assert.Equal(t, repo.Head(), refs[0].Hash)
	assert.Empty(t, refs[0].Remote)
}

func TestSelectRefs_RemoteBranchWinsInMirror(t *testing.T) {
	repo := testutils.NewTestRepo(t)
	repo.Commit("init", map[string]string{"antora.yml": "name: docs\n"})
	repo.Branch("v1.0")

	r, _ := newTestResolver(t, false)
	h, err := r.Open(t.Context(), Source{URL: repo.FileURL()})
	require.NoError(t, err)
	defer func() { _ = h.Close() }()

	refs, err := SelectRefs(h, CacheRemoteName, []string{"HEAD", "v*"}, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"main", "v1.0"}, refNames(refs))
	for _, ref := range refs {
		assert.Equal(t, "refs/remotes/origin/"+ref.Name, ref.QualifiedName)
		assert.Equal(t, CacheRemoteName, ref.Remote)
		assert.False(t, ref.IsHead)
	}
}

func TestMatcher(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		input    string
		want     bool
	}{
		{"star", []string{"v*"}, "v1.0", true},
		{"star no match", []string{"v*"}, "main", false},
		{"separator", []string{"release/*"}, "release/1.0", true},
		{"star stops at slash", []string{"*"}, "release/1.0", false},
		{"brace list", []string{"{main,develop}"}, "develop", true},
		{"numeric range", []string{"v{0..9}*"}, "v3.2", true},
		{"numeric range outside", []string{"v{1..2}.*"}, "v3.0", false},
		{"negation removes", []string{"v*", "!v1.*"}, "v1.2", false},
		{"negation keeps others", []string{"v*", "!v1.*"}, "v2.2", true},
		{"negation only", []string{"!main"}, "develop", true},
		{"negation only excludes", []string{"!main"}, "main", false},
		{"later include restores", []string{"v*", "!v1.*", "v1.5"}, "v1.5", true},
		{"empty", nil, "main", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := CompilePatterns(tt.patterns)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Match(tt.input))
		})
	}
}

func TestExpandRanges(t *testing.T) {
	assert.Equal(t, "v{0,1,2}*", expandRanges("v{0..2}*"))
	assert.Equal(t, "v{3,2,1}", expandRanges("v{3..1}"))
	assert.Equal(t, "main", expandRanges("main"))
}
