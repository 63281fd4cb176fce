package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/doccatalog/internal/config"
	"git.home.luguber.info/inful/doccatalog/internal/content"
	"git.home.luguber.info/inful/doccatalog/internal/git"
	"git.home.luguber.info/inful/doccatalog/internal/retry"
	"git.home.luguber.info/inful/doccatalog/internal/testutil/testutils"
)

func testConfig(t *testing.T, sources ...config.SourceConfig) *config.Config {
	t.Helper()
	cfg := &config.Config{
		Content: config.ContentConfig{Sources: sources},
		Runtime: config.RuntimeConfig{CacheDir: t.TempDir(), Concurrency: 2},
	}
	require.NoError(t, cfg.ApplyDefaults())
	return cfg
}

func newTestAggregator(t *testing.T, cfg *config.Config) *Aggregator {
	t.Helper()
	resolver := git.NewResolver(git.Options{CacheDir: cfg.Runtime.CacheDir, Retry: retry.Policy{}})
	return New(cfg, WithResolver(resolver))
}

func filePaths(files []*content.File) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Path)
	}
	return out
}

func TestAggregate_MergesAcrossSources(t *testing.T) {
	local := testutils.NewTestRepo(t)
	local.Commit("v1", map[string]string{
		"docs/antora.yml":                    "name: comp\nversion: '1.0'\ntitle: Component\n",
		"docs/modules/ROOT/pages/index.adoc": "= Index\n",
	})
	local.Checkout("v2.0", true)
	local.Commit("v2", map[string]string{
		"docs/antora.yml": "name: comp\nversion: '2.0'\n",
	})
	local.Checkout("main", false)
	local.WriteFiles(map[string]string{"docs/modules/ROOT/pages/draft.adoc": "= Draft\n"})

	remote := testutils.NewTestRepo(t)
	remote.Commit("init", map[string]string{
		"antora.yml":                          "name: comp\nversion: '1.0'\n",
		"modules/ROOT/pages/remote-page.adoc": "= Remote\n",
	})

	cfg := testConfig(t,
		config.SourceConfig{URL: local.Dir, StartPath: "docs", Branches: config.Patterns{"HEAD", "v*"}},
		config.SourceConfig{URL: remote.FileURL(), Branches: config.Patterns{"main"}},
	)

	result, err := newTestAggregator(t, cfg).Aggregate(t.Context())
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, "2.0", result[0].Version)
	assert.Equal(t, "comp", result[0].Title)
	assert.Equal(t, []string{"modules/ROOT/pages/index.adoc"}, filePaths(result[0].Files))

	v1 := result[1]
	assert.Equal(t, "1.0", v1.Version)
	assert.Equal(t, "Component", v1.Title)
	assert.ElementsMatch(t, []string{"modules/ROOT/pages/index.adoc", "modules/ROOT/pages/draft.adoc"}, filePaths(v1.Files[:2]))
	assert.Equal(t, "modules/ROOT/pages/remote-page.adoc", v1.Files[2].Path)
	require.Len(t, v1.Origins, 2)
	assert.True(t, v1.Origins[0].Worktree)
	assert.Equal(t, local.Dir, v1.Origins[0].WorktreePath)
	assert.False(t, v1.Origins[1].Worktree)
	assert.Equal(t, remote.FileURL(), v1.Origins[1].URL)

	for _, f := range v1.Files[:2] {
		assert.Equal(t, content.MediaTypeAsciiDoc, f.MediaType)
		assert.Equal(t, "docs/"+f.Path, f.Src.Abspath)
		assert.Same(t, v1.Origins[0], f.Src.Origin)
		assert.Equal(t, "file://"+local.Dir+"/docs/"+f.Path, f.Src.EditURL)
	}
}

func TestAggregate_MissingDescriptor(t *testing.T) {
	repo := testutils.NewTestRepo(t)
	repo.Commit("init", map[string]string{"modules/ROOT/pages/index.adoc": "= Index\n"})
	repo.Branch("v1.0")

	cfg := testConfig(t, config.SourceConfig{URL: repo.Dir, Branches: config.Patterns{"v*"}})
	_, err := newTestAggregator(t, cfg).Aggregate(t.Context())

	var missing *DescriptorMissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "v1.0", missing.Location.RefName)
	assert.Contains(t, err.Error(), repo.Dir)
}

func TestAggregate_StartPathError(t *testing.T) {
	repo := testutils.NewTestRepo(t)
	repo.Commit("init", map[string]string{"antora.yml": "name: comp\nversion: '1.0'\n"})
	repo.Branch("v1.0")

	cfg := testConfig(t, config.SourceConfig{URL: repo.Dir, StartPath: "docs", Branches: config.Patterns{"v1.0"}})
	_, err := newTestAggregator(t, cfg).Aggregate(t.Context())

	var spErr *git.StartPathError
	require.ErrorAs(t, err, &spErr)
	assert.Equal(t, "docs", spErr.StartPath)
}

func TestAggregate_NoMatchingRefs(t *testing.T) {
	repo := testutils.NewTestRepo(t)
	repo.Commit("init", map[string]string{"antora.yml": "name: comp\nversion: '1.0'\n"})

	cfg := testConfig(t, config.SourceConfig{URL: repo.Dir, Branches: config.Patterns{"release/*"}})
	result, err := newTestAggregator(t, cfg).Aggregate(t.Context())
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestMaterialize_TagOrigin(t *testing.T) {
	repo := testutils.NewTestRepo(t)
	repo.Commit("init", map[string]string{
		"antora.yml":                    "name: comp\nversion: '1.0'\n",
		"modules/ROOT/pages/index.adoc": "= Index\n",
	})
	repo.Tag("v1.0", true)
	repo.SetRemote("origin", "git@github.com:acme/docs.git")

	h := &git.Handle{Repo: repo.Repo, URL: repo.Dir, Dir: repo.Dir}
	refs, err := git.SelectRefs(h, "origin", nil, []string{"v1.0"})
	require.NoError(t, err)
	require.Len(t, refs, 1)

	cv, err := Materialize(h, refs[0], MaterializeOptions{Remote: "origin", EditURL: true})
	require.NoError(t, err)
	require.Len(t, cv.Files, 1)
	origin := cv.Origins[0]
	assert.Equal(t, "https://github.com/acme/docs.git", origin.URL)
	assert.Equal(t, content.RefTypeTag, origin.RefType)
	assert.Equal(t, "https://github.com/acme/docs/blob/v1.0/modules/ROOT/pages/index.adoc", cv.Files[0].Src.EditURL)

	cv, err = Materialize(h, refs[0], MaterializeOptions{Remote: "origin"})
	require.NoError(t, err)
	assert.Empty(t, cv.Files[0].Src.EditURL)
}
