package classifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/doccatalog/internal/aggregate"
	"git.home.luguber.info/inful/doccatalog/internal/catalog"
	"git.home.luguber.info/inful/doccatalog/internal/config"
	"git.home.luguber.info/inful/doccatalog/internal/content"
	"git.home.luguber.info/inful/doccatalog/internal/metrics"
)

type fileCounter struct {
	metrics.NoopRecorder
	files map[string]int
}

func (c *fileCounter) AddCatalogFiles(family string, n int) {
	if c.files == nil {
		c.files = make(map[string]int)
	}
	c.files[family] += n
}

func newFiles(paths ...string) []*content.File {
	files := make([]*content.File, 0, len(paths))
	for _, p := range paths {
		files = append(files, &content.File{Path: p, MediaType: content.MediaTypeOf(p, nil)})
	}
	return files
}

func componentVersion(name, version string, paths ...string) *aggregate.ComponentVersion {
	return &aggregate.ComponentVersion{
		Name:    name,
		Version: version,
		Title:   strings.ToUpper(name),
		Nav:     []string{"modules/ROOT/nav.adoc"},
		Files:   newFiles(paths...),
	}
}

func TestClassifyContent(t *testing.T) {
	cv := componentVersion("the-component", "v1.2.3",
		"modules/ROOT/pages/index.adoc",
		"modules/ROOT/pages/install.adoc",
		"modules/ROOT/pages/_attributes.adoc",
		"modules/ROOT/pages/_partials/snippet.adoc",
		"modules/ROOT/assets/images/logo.png",
		"modules/ROOT/examples/app.go",
		"modules/ROOT/nav.adoc",
		"README.adoc",
	)
	counter := &fileCounter{}

	cat, err := ClassifyContent([]*aggregate.ComponentVersion{cv}, Options{Recorder: counter})
	require.NoError(t, err)
	assert.Equal(t, 6, cat.Size())

	index := cat.GetByPath("the-component", "v1.2.3", "modules/ROOT/pages/index.adoc")
	require.NotNil(t, index)
	assert.Equal(t, "index.adoc", index.Src.Basename)
	assert.Equal(t, "index", index.Src.Stem)
	assert.Equal(t, ".adoc", index.Src.Extname)
	assert.Equal(t, content.MediaTypeAsciiDoc, index.Src.MediaType)
	assert.Equal(t, "the-component/v1.2.3/index.html", index.Out.Path)
	assert.Equal(t, "/the-component/v1.2.3/index.html", index.Pub.URL)

	partial := cat.GetByPath("the-component", "v1.2.3", "modules/ROOT/pages/_partials/snippet.adoc")
	require.NotNil(t, partial)
	assert.Nil(t, partial.Out)
	assert.Nil(t, partial.Pub)

	nav := cat.FindBy(content.Selector{Family: content.FamilyNavigation})
	require.Len(t, nav, 1)
	require.NotNil(t, nav[0].Nav)
	assert.Equal(t, 0, nav[0].Nav.Index)
	assert.Nil(t, nav[0].Out)
	assert.Equal(t, "/the-component/v1.2.3/", nav[0].Pub.URL)

	assert.Nil(t, cat.GetByPath("the-component", "v1.2.3", "README.adoc"))
	assert.Nil(t, cat.GetByPath("the-component", "v1.2.3", "modules/ROOT/pages/_attributes.adoc"))

	component := cat.GetComponent("the-component")
	require.NotNil(t, component)
	assert.Equal(t, "THE-COMPONENT", component.Title)
	assert.Equal(t, "/the-component/v1.2.3/index.html", component.URL)

	assert.Equal(t, map[string]int{"page": 2, "partial": 1, "image": 1, "example": 1, "navigation": 1}, counter.files)
}

func TestClassifyContentIndexify(t *testing.T) {
	cv := componentVersion("the-component", "v1.2.3", "modules/ROOT/pages/install.adoc")
	cv.StartPage = "install.adoc"

	cat, err := ClassifyContent([]*aggregate.ComponentVersion{cv}, Options{Style: config.HTMLExtensionIndexify})
	require.NoError(t, err)

	install := cat.GetByPath("the-component", "v1.2.3", "modules/ROOT/pages/install.adoc")
	require.NotNil(t, install)
	assert.True(t, strings.HasSuffix(install.Out.Path, "install/index.html"), install.Out.Path)
	assert.True(t, strings.HasSuffix(install.Pub.URL, "install/"), install.Pub.URL)
	assert.Equal(t, "/the-component/v1.2.3/install/", cat.GetComponentVersion("the-component", "v1.2.3").URL)
}

func TestClassifyContentStartPage(t *testing.T) {
	explicit := componentVersion("comp", "2.0", "modules/guide/pages/start.adoc", "modules/ROOT/pages/index.adoc")
	explicit.StartPage = "guide:start.adoc"
	explicit.DisplayVersion = "2.0 LTS"
	explicit.Prerelease = "true"
	missing := componentVersion("comp", "1.0", "modules/ROOT/pages/other.adoc")
	missing.StartPage = "nowhere.adoc"
	invalid := componentVersion("other", "dev", "modules/ROOT/pages/index.adoc")
	invalid.StartPage = "a:b:c:d"

	cat, err := ClassifyContent([]*aggregate.ComponentVersion{explicit, missing, invalid}, Options{Style: config.HTMLExtensionDrop})
	require.NoError(t, err)

	v2 := cat.GetComponentVersion("comp", "2.0")
	require.NotNil(t, v2)
	assert.Equal(t, "/comp/2.0/guide/start", v2.URL)
	assert.Equal(t, "2.0 LTS", v2.DisplayVersion)
	assert.Equal(t, "true", v2.Prerelease)

	v1 := cat.GetComponentVersion("comp", "1.0")
	require.NotNil(t, v1)
	assert.Equal(t, "/comp/1.0/", v1.URL, "missing start page falls back to the version index")

	dev := cat.GetComponentVersion("other", "dev")
	require.NotNil(t, dev)
	assert.Equal(t, "/other/dev/", dev.URL)

	versions := cat.GetComponent("comp").Versions
	require.Len(t, versions, 2)
	assert.Equal(t, "2.0", versions[0].Version)
	assert.Equal(t, "/comp/2.0/guide/start", cat.GetComponent("comp").URL)
}

func TestClassifyContentDuplicateFile(t *testing.T) {
	first := componentVersion("comp", "1.0", "modules/ROOT/pages/index.adoc")
	first.Files = append(first.Files, newFiles("modules/ROOT/pages/index.adoc")...)

	_, err := ClassifyContent([]*aggregate.ComponentVersion{first}, Options{})
	var dup *catalog.DuplicateFileError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, content.FamilyPage, dup.Key.Family)
}

func TestClassifyContentDuplicateVersion(t *testing.T) {
	a := componentVersion("comp", "1.0", "modules/ROOT/pages/a.adoc")
	b := componentVersion("comp", "1.0", "modules/ROOT/pages/b.adoc")

	_, err := ClassifyContent([]*aggregate.ComponentVersion{a, b}, Options{})
	var dup *catalog.DuplicateVersionError
	require.ErrorAs(t, err, &dup)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := &config.Config{
		Site: config.SiteConfig{URL: "https://docs.example.com"},
		URLs: config.URLConfig{HTMLExtensionStyle: config.HTMLExtensionDrop},
	}
	opts := OptionsFromConfig(cfg)
	assert.Equal(t, config.HTMLExtensionDrop, opts.Style)
	assert.Equal(t, "https://docs.example.com", opts.SiteURL)
}
