package classifier

import (
	"path"
	"strings"

	"git.home.luguber.info/inful/doccatalog/internal/content"
)

// AttributesFilename is the shared attributes file in a pages directory. It
// is never published as a page.
const AttributesFilename = "_attributes.adoc"

// Partition is the classification of one path. The zero value means the
// path is ignored.
type Partition struct {
	Family   content.Family
	Module   string
	Relative string
	// NavIndex is the position in the component's nav list for navigation files.
	NavIndex int
}

// Ignored reports whether the path belongs to no family.
func (p Partition) Ignored() bool { return p.Family == "" }

// PartitionPath classifies a path relative to the component version root.
// Paths listed in nav are navigation files regardless of their location.
func PartitionPath(p string, nav []string) Partition {
	for i, navPath := range nav {
		if navPath == p {
			return navPartition(p, i)
		}
	}

	segments := strings.Split(p, "/")
	if len(segments) < 4 || segments[0] != "modules" || segments[1] == "" {
		return Partition{}
	}
	module := segments[1]
	rest := segments[2:]
	relative := func(n int) string { return strings.Join(rest[n:], "/") }

	switch rest[0] {
	case "pages":
		if rest[1] == "_partials" {
			if len(rest) < 3 {
				return Partition{}
			}
			return Partition{Family: content.FamilyPartial, Module: module, Relative: relative(2)}
		}
		rel := relative(1)
		if path.Ext(rel) != ".adoc" || rel == AttributesFilename {
			return Partition{}
		}
		return Partition{Family: content.FamilyPage, Module: module, Relative: rel}
	case "partials":
		return Partition{Family: content.FamilyPartial, Module: module, Relative: relative(1)}
	case "assets":
		if len(rest) < 3 {
			return Partition{}
		}
		switch rest[1] {
		case "images":
			return Partition{Family: content.FamilyImage, Module: module, Relative: relative(2)}
		case "attachments":
			return Partition{Family: content.FamilyAttachment, Module: module, Relative: relative(2)}
		}
	case "images":
		return Partition{Family: content.FamilyImage, Module: module, Relative: relative(1)}
	case "attachments":
		return Partition{Family: content.FamilyAttachment, Module: module, Relative: relative(1)}
	case "examples":
		return Partition{Family: content.FamilyExample, Module: module, Relative: relative(1)}
	}
	return Partition{}
}

// navPartition places a navigation file relative to its module root, or
// relative to the component root when it lives outside modules/.
func navPartition(p string, index int) Partition {
	segments := strings.Split(p, "/")
	if len(segments) > 2 && segments[0] == "modules" && segments[1] != "" {
		return Partition{
			Family:   content.FamilyNavigation,
			Module:   segments[1],
			Relative: strings.Join(segments[2:], "/"),
			NavIndex: index,
		}
	}
	return Partition{Family: content.FamilyNavigation, Relative: p, NavIndex: index}
}
