package catalog

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/doccatalog/internal/content"
	"git.home.luguber.info/inful/doccatalog/internal/foundation/errors"
)

// DuplicateFileError reports a second file with the identity of a file
// already in the catalog.
type DuplicateFileError struct {
	Key      content.Key
	Existing *content.File
	Added    *content.File
}

func (e *DuplicateFileError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "duplicate %s: %s", e.Key.Family, e.Key)
	for i, f := range []*content.File{e.Existing, e.Added} {
		fmt.Fprintf(&b, "\n  %d: %s", i+1, describe(f))
	}
	return b.String()
}

func (e *DuplicateFileError) Category() errors.ErrorCategory { return errors.CategoryCatalog }

// DuplicateVersionError reports a component version registered twice.
type DuplicateVersionError struct {
	Component string
	Version   string
}

func (e *DuplicateVersionError) Error() string {
	return fmt.Sprintf("duplicate version detected for component %s: %s", e.Component, e.Version)
}

func (e *DuplicateVersionError) Category() errors.ErrorCategory { return errors.CategoryCatalog }

func describe(f *content.File) string {
	if f == nil {
		return "<unknown>"
	}
	o := f.Src.Origin
	if o == nil {
		return f.Path
	}
	loc := fmt.Sprintf("%s in %s (%s: %s", f.Src.Abspath, o.URL, o.RefType, o.RefName)
	if o.Worktree {
		loc += " <worktree>"
	}
	if o.StartPath != "" {
		loc += " | start path: " + o.StartPath
	}
	return loc + ")"
}
