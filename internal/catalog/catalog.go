// Package catalog indexes classified content files by identity and keeps
// the registry of component versions.
//
// A Catalog is built once by a single goroutine and may be read
// concurrently afterwards. Lookups return nil on a miss.
package catalog

import (
	"github.com/tidwall/btree"

	"git.home.luguber.info/inful/doccatalog/internal/content"
	"git.home.luguber.info/inful/doccatalog/internal/foundation/errors"
	"git.home.luguber.info/inful/doccatalog/internal/versioning"
)

// pathKey addresses a file by its path within a component version.
type pathKey struct {
	component string
	version   string
	path      string
}

// Catalog is the content catalog.
type Catalog struct {
	files      map[content.Key]*content.File
	keys       *btree.BTreeG[content.Key]
	byPath     map[pathKey]*content.File
	components *btree.Map[string, *Component]
	compare    versioning.Comparator
}

// Option customizes a Catalog.
type Option func(*Catalog)

// WithComparator sets the ordering of component versions.
func WithComparator(cmp versioning.Comparator) Option {
	return func(c *Catalog) {
		if cmp != nil {
			c.compare = cmp
		}
	}
}

// New returns an empty catalog ordering versions with versioning.Compare.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		files:      make(map[content.Key]*content.File),
		keys:       btree.NewBTreeG(func(a, b content.Key) bool { return a.Less(b) }),
		byPath:     make(map[pathKey]*content.File),
		components: btree.NewMap[string, *Component](0),
		compare:    versioning.Compare,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddFile inserts a classified file. It fails with *DuplicateFileError when
// a file with the same identity exists.
func (c *Catalog) AddFile(f *content.File) error {
	if !f.Src.Family.Valid() {
		return errors.ValidationError("file has no content family").
			WithContext("path", f.Path).
			WithContext("family", string(f.Src.Family)).
			Build()
	}
	key := f.Src.Key()
	if existing, ok := c.files[key]; ok {
		return &DuplicateFileError{Key: key, Existing: existing, Added: f}
	}
	c.files[key] = f
	c.keys.Set(key)
	pk := pathKey{component: f.Src.Component, version: f.Src.Version, path: f.Path}
	if _, ok := c.byPath[pk]; !ok {
		c.byPath[pk] = f
	}
	return nil
}

// GetByID returns the file with the given identity.
func (c *Catalog) GetByID(key content.Key) *content.File {
	return c.files[key]
}

// GetByPath returns the file at path (relative to its start path) in the
// given component version.
func (c *Catalog) GetByPath(component, version, path string) *content.File {
	return c.byPath[pathKey{component: component, version: version, path: path}]
}

// FindBy returns the files matching every non-empty field of sel, ordered
// by identity.
func (c *Catalog) FindBy(sel content.Selector) []*content.File {
	var out []*content.File
	visit := func(key content.Key) bool {
		if sel.Component != "" && key.Component != sel.Component {
			return false
		}
		if f := c.files[key]; sel.Matches(&f.Src) {
			out = append(out, f)
		}
		return true
	}
	if sel.Component != "" {
		c.keys.Ascend(content.Key{Component: sel.Component}, visit)
		return out
	}
	c.keys.Scan(visit)
	return out
}

// GetFiles returns every file ordered by identity.
func (c *Catalog) GetFiles() []*content.File {
	out := make([]*content.File, 0, len(c.files))
	c.keys.Scan(func(key content.Key) bool {
		out = append(out, c.files[key])
		return true
	})
	return out
}

// Size is the number of files in the catalog.
func (c *Catalog) Size() int { return len(c.files) }
