package classifier

import (
	"path"
	"strings"

	"git.home.luguber.info/inful/doccatalog/internal/config"
	"git.home.luguber.info/inful/doccatalog/internal/content"
)

// ComputeOut returns the output location of a publishable file.
//
//	<component>/[<version>/][<module>/][_images/|_attachments/]<dir>/<basename>
//
// The master version, the ROOT module and the ROOT component are omitted.
// Page extensions become .html; the indexify style writes non-index pages
// as <stem>/index.html.
func ComputeOut(src *content.Src, style config.HTMLExtensionStyle) *content.Out {
	modulePath := modulePath(src)
	basename := src.Basename
	indexDir := ""

	var familyDir string
	switch src.Family {
	case content.FamilyPage:
		if style == config.HTMLExtensionIndexify && src.Stem != "index" {
			basename = "index.html"
			indexDir = src.Stem
		} else {
			basename = src.Stem + ".html"
		}
	case content.FamilyImage:
		familyDir = "_images"
	case content.FamilyAttachment:
		familyDir = "_attachments"
	}

	relDir := path.Dir(src.Relative)
	if relDir == "." {
		relDir = ""
	}
	dirname := path.Join(modulePath, familyDir, relDir, indexDir)
	return &content.Out{
		Dirname:        dirname,
		Basename:       basename,
		Path:           path.Join(dirname, basename),
		ModuleRootPath: relativePath(dirname, modulePath),
		RootPath:       relativePath(dirname, ""),
	}
}

// ComputePub returns the publication record of a file. Navigation files get
// a synthetic directory URL of their module, used only to resolve
// references relative to them. siteURL, when set, yields absolute URLs.
func ComputePub(src *content.Src, out *content.Out, style config.HTMLExtensionStyle, siteURL string) *content.Pub {
	var pub *content.Pub
	if src.Family == content.FamilyNavigation || out == nil {
		modulePath := modulePath(src)
		url := "/"
		if modulePath != "" {
			url = "/" + modulePath + "/"
		}
		pub = &content.Pub{URL: url, ModuleRootPath: ".", RootPath: relativePath(modulePath, "")}
	} else {
		url := "/" + out.Path
		if src.Family == content.FamilyPage {
			switch style {
			case config.HTMLExtensionDrop:
				if out.Basename == "index.html" {
					url = strings.TrimSuffix(url, "index.html")
				} else {
					url = strings.TrimSuffix(url, ".html")
				}
			case config.HTMLExtensionIndexify:
				url = strings.TrimSuffix(url, out.Basename)
			}
		}
		pub = &content.Pub{URL: url, ModuleRootPath: out.ModuleRootPath, RootPath: out.RootPath}
	}
	if siteURL != "" {
		pub.AbsoluteURL = strings.TrimRight(siteURL, "/") + pub.URL
	}
	return pub
}

func modulePath(src *content.Src) string {
	component := src.Component
	if component == content.RootModule {
		component = ""
	}
	version := src.Version
	if version == content.MasterVersion {
		version = ""
	}
	module := src.Module
	if module == content.RootModule {
		module = ""
	}
	return path.Join(component, version, module)
}

// relativePath returns the relative path from directory from to directory
// to, both relative to the site root. It returns "." when they are equal.
func relativePath(from, to string) string {
	fromParts := splitPath(from)
	toParts := splitPath(to)
	common := 0
	for common < len(fromParts) && common < len(toParts) && fromParts[common] == toParts[common] {
		common++
	}
	parts := make([]string, 0, len(fromParts)-common+len(toParts)-common)
	for range fromParts[common:] {
		parts = append(parts, "..")
	}
	parts = append(parts, toParts[common:]...)
	if len(parts) == 0 {
		return "."
	}
	return strings.Join(parts, "/")
}

func splitPath(p string) []string {
	if p == "" || p == "." {
		return nil
	}
	return strings.Split(p, "/")
}
