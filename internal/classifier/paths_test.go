package classifier

import (
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/doccatalog/internal/config"
	"git.home.luguber.info/inful/doccatalog/internal/content"
)

func srcOf(component, version, module string, family content.Family, relative string) *content.Src {
	src := &content.Src{Component: component, Version: version, Module: module, Family: family, Relative: relative}
	src.Basename = path.Base(relative)
	src.Stem, src.Extname = content.SplitName(src.Basename)
	return src
}

func TestComputeOutAndPub(t *testing.T) {
	tests := []struct {
		name    string
		src     *content.Src
		style   config.HTMLExtensionStyle
		outPath string
		url     string
		modRoot string
		root    string
	}{
		{
			name:    "default page",
			src:     srcOf("the-component", "v1.2.3", "ROOT", content.FamilyPage, "index.adoc"),
			style:   config.HTMLExtensionDefault,
			outPath: "the-component/v1.2.3/index.html",
			url:     "/the-component/v1.2.3/index.html",
			modRoot: ".",
			root:    "../..",
		},
		{
			name:    "indexify page",
			src:     srcOf("the-component", "v1.2.3", "ROOT", content.FamilyPage, "install.adoc"),
			style:   config.HTMLExtensionIndexify,
			outPath: "the-component/v1.2.3/install/index.html",
			url:     "/the-component/v1.2.3/install/",
			modRoot: "..",
			root:    "../../..",
		},
		{
			name:    "indexify index page",
			src:     srcOf("comp", "1.0", "guide", content.FamilyPage, "index.adoc"),
			style:   config.HTMLExtensionIndexify,
			outPath: "comp/1.0/guide/index.html",
			url:     "/comp/1.0/guide/",
			modRoot: ".",
			root:    "../../..",
		},
		{
			name:    "drop page",
			src:     srcOf("comp", "1.0", "guide", content.FamilyPage, "topic/setup.adoc"),
			style:   config.HTMLExtensionDrop,
			outPath: "comp/1.0/guide/topic/setup.html",
			url:     "/comp/1.0/guide/topic/setup",
			modRoot: "..",
			root:    "../../../..",
		},
		{
			name:    "drop index page",
			src:     srcOf("comp", "1.0", "ROOT", content.FamilyPage, "index.adoc"),
			style:   config.HTMLExtensionDrop,
			outPath: "comp/1.0/index.html",
			url:     "/comp/1.0/",
			modRoot: ".",
			root:    "../..",
		},
		{
			name:    "master version omitted",
			src:     srcOf("comp", "master", "ROOT", content.FamilyPage, "index.adoc"),
			style:   config.HTMLExtensionDefault,
			outPath: "comp/index.html",
			url:     "/comp/index.html",
			modRoot: ".",
			root:    "..",
		},
		{
			name:    "image",
			src:     srcOf("comp", "1.0", "guide", content.FamilyImage, "diagrams/flow.svg"),
			style:   config.HTMLExtensionIndexify,
			outPath: "comp/1.0/guide/_images/diagrams/flow.svg",
			url:     "/comp/1.0/guide/_images/diagrams/flow.svg",
			modRoot: "../..",
			root:    "../../../../..",
		},
		{
			name:    "attachment in ROOT",
			src:     srcOf("comp", "1.0", "ROOT", content.FamilyAttachment, "sample.zip"),
			style:   config.HTMLExtensionDrop,
			outPath: "comp/1.0/_attachments/sample.zip",
			url:     "/comp/1.0/_attachments/sample.zip",
			modRoot: "..",
			root:    "../../..",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ComputeOut(tt.src, tt.style)
			require.NotNil(t, out)
			assert.Equal(t, tt.outPath, out.Path)
			assert.Equal(t, tt.modRoot, out.ModuleRootPath)
			assert.Equal(t, tt.root, out.RootPath)

			pub := ComputePub(tt.src, out, tt.style, "")
			assert.Equal(t, tt.url, pub.URL)
			assert.Empty(t, pub.AbsoluteURL)
			assert.Equal(t, out.ModuleRootPath, pub.ModuleRootPath)
		})
	}
}

func TestComputePubNavigation(t *testing.T) {
	src := srcOf("comp", "1.0", "guide", content.FamilyNavigation, "nav.adoc")
	pub := ComputePub(src, nil, config.HTMLExtensionDefault, "https://docs.example.com/")
	assert.Equal(t, "/comp/1.0/guide/", pub.URL)
	assert.Equal(t, "https://docs.example.com/comp/1.0/guide/", pub.AbsoluteURL)
	assert.Equal(t, "../../..", pub.RootPath)

	master := srcOf("comp", "master", "ROOT", content.FamilyNavigation, "nav.adoc")
	assert.Equal(t, "/comp/", ComputePub(master, nil, config.HTMLExtensionDefault, "").URL)
}

func TestComputePubAbsoluteURL(t *testing.T) {
	src := srcOf("comp", "2.0", "ROOT", content.FamilyPage, "index.adoc")
	out := ComputeOut(src, config.HTMLExtensionDefault)
	pub := ComputePub(src, out, config.HTMLExtensionDefault, "https://docs.example.com")
	assert.Equal(t, "https://docs.example.com/comp/2.0/index.html", pub.AbsoluteURL)
}

func TestRelativePath(t *testing.T) {
	assert.Equal(t, ".", relativePath("a/b", "a/b"))
	assert.Equal(t, "..", relativePath("a/b/c", "a/b"))
	assert.Equal(t, "../../x", relativePath("a/b/c", "a/x"))
	assert.Equal(t, "../..", relativePath("a/b", ""))
	assert.Equal(t, "a/b", relativePath("", "a/b"))
}
