package aggregate

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/doccatalog/internal/content"
	"git.home.luguber.info/inful/doccatalog/internal/foundation/errors"
)

// Location identifies the ref a descriptor was read from.
type Location struct {
	URL       string
	RefName   string
	RefType   content.RefType
	StartPath string
	Worktree  bool
}

func (l Location) String() string {
	refType := l.RefType
	if refType == "" {
		refType = content.RefTypeBranch
	}
	ref := l.RefName
	if l.Worktree {
		ref += " <worktree>"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s: %s", l.URL, refType, ref)
	if l.StartPath != "" {
		fmt.Fprintf(&b, " | start path: %s", l.StartPath)
	}
	b.WriteString(")")
	return b.String()
}

// DescriptorMissingError reports a ref without a component descriptor.
type DescriptorMissingError struct {
	Location Location
}

func (e *DescriptorMissingError) Error() string {
	return fmt.Sprintf("%s not found in %s", DescriptorFilename, e.Location)
}

func (e *DescriptorMissingError) Category() errors.ErrorCategory { return errors.CategoryDescriptor }

// DescriptorInvalidError reports a descriptor that cannot be parsed or lacks
// a required field.
type DescriptorInvalidError struct {
	Location Location
	// Field is the offending key, empty for syntax errors.
	Field string
	// Problem describes what is wrong with Field ("missing", "not a scalar").
	Problem string
	Err     error
}

func (e *DescriptorInvalidError) Error() string {
	switch {
	case e.Field != "" && e.Problem == "missing":
		return fmt.Sprintf("%s is missing a %s in %s", DescriptorFilename, e.Field, e.Location)
	case e.Field != "":
		return fmt.Sprintf("%s has an invalid %s (%s) in %s", DescriptorFilename, e.Field, e.Problem, e.Location)
	case e.Err != nil:
		return fmt.Sprintf("%s has invalid syntax in %s: %v", DescriptorFilename, e.Location, e.Err)
	default:
		return fmt.Sprintf("%s is invalid in %s", DescriptorFilename, e.Location)
	}
}

func (e *DescriptorInvalidError) Unwrap() error { return e.Err }

func (e *DescriptorInvalidError) Category() errors.ErrorCategory { return errors.CategoryDescriptor }
