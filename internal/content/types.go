package content

import (
	"io/fs"
	"path"
	"strings"
	"time"
)

// Family is the structural role of a file inside a component version.
type Family string

const (
	FamilyPage       Family = "page"
	FamilyPartial    Family = "partial"
	FamilyImage      Family = "image"
	FamilyAttachment Family = "attachment"
	FamilyExample    Family = "example"
	FamilyNavigation Family = "navigation"
)

// Families lists every family in a stable order.
var Families = []Family{
	FamilyAttachment,
	FamilyExample,
	FamilyImage,
	FamilyNavigation,
	FamilyPage,
	FamilyPartial,
}

// Valid reports whether f is a known family.
func (f Family) Valid() bool {
	for _, known := range Families {
		if f == known {
			return true
		}
	}
	return false
}

// Publishable reports whether files of this family receive out/pub records.
func (f Family) Publishable() bool {
	switch f {
	case FamilyPage, FamilyImage, FamilyAttachment, FamilyNavigation:
		return true
	default:
		return false
	}
}

// RefType distinguishes branches from tags.
type RefType string

const (
	RefTypeBranch RefType = "branch"
	RefTypeTag    RefType = "tag"
)

// RootModule is the reserved name of a component version's root module.
const RootModule = "ROOT"

// MasterVersion is the version that is omitted from output paths.
const MasterVersion = "master"

// Origin records where a set of files came from. It is shared by all files
// materialized from the same ref and must be treated as immutable.
type Origin struct {
	Type           string  `json:"type"`
	URL            string  `json:"url"`
	RefName        string  `json:"refname"`
	RefType        RefType `json:"reftype"`
	StartPath      string  `json:"startPath"`
	EditURLPattern string  `json:"editUrlPattern,omitempty"`
	Worktree       bool    `json:"worktree"`
	// WorktreePath is the absolute working directory when Worktree is set.
	WorktreePath string `json:"worktreePath,omitempty"`
}

// EditURL substitutes filePath into the origin's edit URL pattern. It returns
// an empty string when the origin has no pattern.
func (o *Origin) EditURL(filePath string) string {
	if o == nil || o.EditURLPattern == "" {
		return ""
	}
	return strings.Replace(o.EditURLPattern, "%s", filePath, 1)
}

// Stat is the subset of file metadata carried with each virtual file.
type Stat struct {
	Mode    fs.FileMode `json:"mode"`
	Size    int64       `json:"size"`
	ModTime time.Time   `json:"mtime,omitzero"`
}

// Src describes a file's position in the content model.
type Src struct {
	Component string  `json:"component"`
	Version   string  `json:"version"`
	Module    string  `json:"module"`
	Family    Family  `json:"family"`
	Relative  string  `json:"relative"`
	Basename  string  `json:"basename"`
	Stem      string  `json:"stem"`
	Extname   string  `json:"extname"`
	MediaType string  `json:"mediaType"`
	Origin    *Origin `json:"-"`
	EditURL   string  `json:"editUrl,omitempty"`
	// Abspath is the path of the file relative to the repository root.
	Abspath string `json:"abspath,omitempty"`
}

// Key returns the composite identity of the file.
func (s *Src) Key() Key {
	return Key{
		Component: s.Component,
		Version:   s.Version,
		Module:    s.Module,
		Family:    s.Family,
		Relative:  s.Relative,
	}
}

// Out holds the output location of a published file, relative to the site root.
type Out struct {
	Dirname        string `json:"dirname"`
	Basename       string `json:"basename"`
	Path           string `json:"path"`
	ModuleRootPath string `json:"moduleRootPath"`
	RootPath       string `json:"rootPath"`
}

// Pub holds the publication URL of a file.
type Pub struct {
	URL            string `json:"url"`
	AbsoluteURL    string `json:"absoluteUrl,omitempty"`
	ModuleRootPath string `json:"moduleRootPath"`
	RootPath       string `json:"rootPath"`
}

// NavInfo is attached to navigation files.
type NavInfo struct {
	Index int `json:"index"`
}

// File is a virtual file flowing through the pipeline.
type File struct {
	Path      string   `json:"path"`
	Contents  []byte   `json:"-"`
	Stat      Stat     `json:"stat"`
	MediaType string   `json:"mediaType"`
	Src       Src      `json:"src"`
	Out       *Out     `json:"out,omitempty"`
	Pub       *Pub     `json:"pub,omitempty"`
	Nav       *NavInfo `json:"nav,omitempty"`
}

// Key is the composite identity of a catalog entry.
type Key struct {
	Component string
	Version   string
	Module    string
	Family    Family
	Relative  string
}

// String renders the key in reference form.
func (k Key) String() string {
	return k.Version + "@" + k.Component + ":" + k.Module + ":" + string(k.Family) + "$" + k.Relative
}

// Less orders keys by component, version, module, family then relative path.
// It is a lexical order used for stable listings, not version precedence.
func (k Key) Less(o Key) bool {
	if k.Component != o.Component {
		return k.Component < o.Component
	}
	if k.Version != o.Version {
		return k.Version < o.Version
	}
	if k.Module != o.Module {
		return k.Module < o.Module
	}
	if k.Family != o.Family {
		return k.Family < o.Family
	}
	return k.Relative < o.Relative
}

// Selector is a partial key; empty fields match anything.
type Selector struct {
	Component string
	Version   string
	Module    string
	Family    Family
	Relative  string
	Basename  string
	Extname   string
}

// Matches reports whether src agrees with every non-empty selector field.
func (s Selector) Matches(src *Src) bool {
	switch {
	case s.Component != "" && s.Component != src.Component:
		return false
	case s.Version != "" && s.Version != src.Version:
		return false
	case s.Module != "" && s.Module != src.Module:
		return false
	case s.Family != "" && s.Family != src.Family:
		return false
	case s.Relative != "" && s.Relative != src.Relative:
		return false
	case s.Basename != "" && s.Basename != src.Basename:
		return false
	case s.Extname != "" && s.Extname != src.Extname:
		return false
	}
	return true
}

// SplitName splits a basename into stem and extension, following path.Ext.
func SplitName(basename string) (stem, ext string) {
	ext = path.Ext(basename)
	return strings.TrimSuffix(basename, ext), ext
}
