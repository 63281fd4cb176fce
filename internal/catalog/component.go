package catalog

import "slices"

// Component is a named documentation unit and its registered versions.
type Component struct {
	Name string `json:"name"`
	// Title and URL mirror the latest version.
	Title string `json:"title"`
	URL   string `json:"url"`
	// Versions are ordered newest first.
	Versions []*ComponentVersion `json:"versions"`
}

// ComponentVersion is one registered version of a component.
type ComponentVersion struct {
	Version        string `json:"version"`
	Title          string `json:"title"`
	URL            string `json:"url"`
	DisplayVersion string `json:"displayVersion,omitempty"`
	Prerelease     string `json:"prerelease,omitempty"`
}

// Latest returns the newest registered version, or nil.
func (c *Component) Latest() *ComponentVersion {
	if c == nil || len(c.Versions) == 0 {
		return nil
	}
	return c.Versions[0]
}

// Version returns the registered version v, or nil.
func (c *Component) Version(v string) *ComponentVersion {
	if c == nil {
		return nil
	}
	for _, cv := range c.Versions {
		if cv.Version == v {
			return cv
		}
	}
	return nil
}

// RegisterComponentVersion adds version to component name, creating the
// component on first use. Versions are kept newest first; when the new
// version becomes the newest, the component's title and URL follow it.
func (c *Catalog) RegisterComponentVersion(name, version, title, url string) (*ComponentVersion, error) {
	cv := &ComponentVersion{Version: version, Title: title, URL: url, DisplayVersion: version}
	comp, ok := c.components.Get(name)
	if !ok {
		comp = &Component{Name: name, Title: title, URL: url, Versions: []*ComponentVersion{cv}}
		c.components.Set(name, comp)
		return cv, nil
	}
	if comp.Version(version) != nil {
		return nil, &DuplicateVersionError{Component: name, Version: version}
	}
	idx, _ := slices.BinarySearchFunc(comp.Versions, version, func(existing *ComponentVersion, v string) int {
		return c.compare(existing.Version, v)
	})
	comp.Versions = slices.Insert(comp.Versions, idx, cv)
	if idx == 0 {
		comp.Title = title
		comp.URL = url
	}
	return cv, nil
}

// GetComponent returns the component called name, or nil.
func (c *Catalog) GetComponent(name string) *Component {
	comp, _ := c.components.Get(name)
	return comp
}

// GetComponentVersion returns the named component version, or nil.
func (c *Catalog) GetComponentVersion(name, version string) *ComponentVersion {
	return c.GetComponent(name).Version(version)
}

// GetComponents returns all components ordered by name.
func (c *Catalog) GetComponents() []*Component {
	out := make([]*Component, 0, c.components.Len())
	c.components.Scan(func(_ string, comp *Component) bool {
		out = append(out, comp)
		return true
	})
	return out
}
