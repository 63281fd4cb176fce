package resource

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"git.home.luguber.info/inful/doccatalog/internal/catalog"
	"git.home.luguber.info/inful/doccatalog/internal/content"
)

// DefaultCacheSize bounds the number of parsed references a Resolver keeps.
const DefaultCacheSize = 4096

type cacheKey struct {
	spec          string
	ctx           Context
	defaultFamily content.Family
	permitted     string
}

type parsed struct {
	ref Reference
	err error
}

// Resolver resolves references against a built catalog. It is safe for
// concurrent use once the catalog is no longer modified.
type Resolver struct {
	catalog *catalog.Catalog
	cache   *lru.Cache[cacheKey, parsed]
}

// NewResolver creates a Resolver caching up to size parsed references.
// DefaultCacheSize is used when size is not positive.
func NewResolver(cat *catalog.Catalog, size int) (*Resolver, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[cacheKey, parsed](size)
	if err != nil {
		return nil, err
	}
	return &Resolver{catalog: cat, cache: cache}, nil
}

// Parse parses spec in ctx, reusing earlier results for the same input.
func (r *Resolver) Parse(spec string, ctx Context, opts Options) (Reference, error) {
	families := make([]string, 0, len(opts.Permitted))
	for _, f := range opts.Permitted {
		families = append(families, string(f))
	}
	key := cacheKey{spec: spec, ctx: ctx, defaultFamily: opts.DefaultFamily, permitted: strings.Join(families, ",")}
	if hit, ok := r.cache.Get(key); ok {
		return hit.ref, hit.err
	}
	ref, err := Parse(spec, ctx, opts)
	r.cache.Add(key, parsed{ref: ref, err: err})
	return ref, err
}

// Resolve parses spec and returns the catalog file it points at. It returns
// nil without error when the reference is well formed but has no target.
func (r *Resolver) Resolve(spec string, ctx Context, opts Options) (*content.File, error) {
	ref, err := r.Parse(spec, ctx, opts)
	if err != nil {
		return nil, err
	}
	return r.Lookup(ref), nil
}

// Lookup returns the file ref points at, or nil. A reference to the latest
// version of a component resolves against the component's newest version.
func (r *Resolver) Lookup(ref Reference) *content.File {
	return lookup(r.catalog, ref)
}

// ResolvePage resolves a page reference. Only the page family is accepted.
func (r *Resolver) ResolvePage(spec string, ctx Context) (*content.File, Reference, error) {
	ref, err := r.Parse(spec, ctx, Options{DefaultFamily: content.FamilyPage, Permitted: []content.Family{content.FamilyPage}})
	if err != nil {
		return nil, Reference{}, err
	}
	return r.Lookup(ref), ref, nil
}

// Resolve is a convenience wrapper that parses and resolves without caching.
func Resolve(cat *catalog.Catalog, spec string, ctx Context, opts Options) (*content.File, error) {
	ref, err := Parse(spec, ctx, opts)
	if err != nil {
		return nil, err
	}
	return lookup(cat, ref), nil
}

func lookup(cat *catalog.Catalog, ref Reference) *content.File {
	if ref.Latest {
		latest := cat.GetComponent(ref.Component).Latest()
		if latest == nil {
			return nil
		}
		ref.Version = latest.Version
	}
	return cat.GetByID(ref.Key())
}
