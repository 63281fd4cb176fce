// Package resource parses contextual resource references and resolves them
// against a catalog.
//
// A reference has the form
//
//	[version@][component:[module:]][family$]relative[#fragment]
//
// A single "x:" prefix names a module of the context component; "c:m:"
// names a component and module; "c::" names a component's ROOT module.
// Fields that are omitted are taken from the context. A component named
// without a version refers to its latest version.
package resource

import (
	"path"
	"regexp"
	"slices"
	"strings"

	"git.home.luguber.info/inful/doccatalog/internal/content"
)

var referenceRx = regexp.MustCompile(`^(?:([^@:$]+)@)?(?:(?:([^@:$]+):)?([^@:$]+)?:)?(?:([^@:$]+)\$)?([^:$][^:$]*)$`)

// Context is the location a reference is written in.
type Context struct {
	Component string
	Version   string
	Module    string
	Family    content.Family
	Relative  string
}

// ContextOf returns the context of a catalog file.
func ContextOf(src *content.Src) Context {
	return Context{
		Component: src.Component,
		Version:   src.Version,
		Module:    src.Module,
		Family:    src.Family,
		Relative:  src.Relative,
	}
}

// Options restrict and default the family of a reference.
type Options struct {
	// DefaultFamily applies when the reference has no family$ segment.
	// It defaults to page.
	DefaultFamily content.Family
	// Permitted lists the allowed families; empty allows all.
	Permitted []content.Family
}

// Reference is a parsed resource reference.
type Reference struct {
	Component string
	Version   string
	Module    string
	Family    content.Family
	Relative  string
	Fragment  string
	// Latest is set when a component was named without a version. Version
	// holds the master placeholder until the reference is resolved.
	Latest bool
}

// Key returns the catalog identity the reference points at.
func (r Reference) Key() content.Key {
	return content.Key{
		Component: r.Component,
		Version:   r.Version,
		Module:    r.Module,
		Family:    r.Family,
		Relative:  r.Relative,
	}
}

// Parse parses spec in ctx.
func Parse(spec string, ctx Context, opts Options) (Reference, error) {
	defaultFamily := opts.DefaultFamily
	if defaultFamily == "" {
		defaultFamily = content.FamilyPage
	}
	fail := func() (Reference, error) {
		err := &InvalidReferenceSyntaxError{Spec: spec}
		if len(opts.Permitted) == 1 {
			err.Expected = opts.Permitted[0]
		}
		return Reference{}, err
	}

	body, fragment, _ := strings.Cut(spec, "#")
	if body == "" && fragment != "" && ctx.Relative != "" {
		return Reference{
			Component: ctx.Component,
			Version:   ctx.Version,
			Module:    ctx.Module,
			Family:    ctx.Family,
			Relative:  ctx.Relative,
			Fragment:  fragment,
		}, nil
	}
	m := referenceRx.FindStringSubmatch(body)
	if m == nil {
		return fail()
	}
	version, component, module, family, relative := m[1], m[2], m[3], content.Family(m[4]), m[5]
	hasModuleSegment := strings.Contains(strings.TrimPrefix(body, version+"@"), ":")

	if family == "" {
		family = defaultFamily
	}
	if !family.Valid() || (len(opts.Permitted) > 0 && !slices.Contains(opts.Permitted, family)) {
		return fail()
	}

	ref := Reference{Family: family, Fragment: fragment}
	switch {
	case component != "":
		ref.Component = component
		ref.Module = module
		if ref.Module == "" {
			ref.Module = content.RootModule
		}
		ref.Version = version
		if version == "" {
			ref.Version = content.MasterVersion
			ref.Latest = true
		}
	default:
		ref.Component = ctx.Component
		ref.Version = version
		if version == "" {
			ref.Version = ctx.Version
		}
		ref.Module = ctx.Module
		if hasModuleSegment {
			ref.Module = module
			if ref.Module == "" {
				ref.Module = content.RootModule
			}
		}
	}

	if strings.HasPrefix(relative, "./") {
		if ctx.Relative != "" && ctx.Family == family {
			relative = path.Join(path.Dir(ctx.Relative), relative[2:])
		} else {
			relative = relative[2:]
		}
	}
	if family == content.FamilyPage && path.Ext(relative) == "" {
		relative += ".adoc"
	}
	if relative == "" {
		return fail()
	}
	ref.Relative = relative
	return ref, nil
}

// ReferenceOf formats the fully qualified reference of src. For a
// versioned file inside a module, parsing the result in any context yields
// the identity of src.
func ReferenceOf(src *content.Src) string {
	var b strings.Builder
	if src.Version != "" {
		b.WriteString(src.Version)
		b.WriteByte('@')
	}
	b.WriteString(src.Component)
	b.WriteByte(':')
	b.WriteString(src.Module)
	b.WriteByte(':')
	b.WriteString(string(src.Family))
	b.WriteByte('$')
	b.WriteString(src.Relative)
	return b.String()
}
