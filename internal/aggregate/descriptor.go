package aggregate

import (
	"gopkg.in/yaml.v3"
)

// DescriptorFilename is the component descriptor at the root of each
// component version's start path.
const DescriptorFilename = "antora.yml"

// Descriptor holds the typed fields of a component descriptor. Scalars are
// kept in their source spelling, so version 1.10 stays "1.10".
type Descriptor struct {
	Name           string
	Version        string
	Title          string
	DisplayVersion string
	// StartPage is a module:relative page spec.
	StartPage string
	// Prerelease is "true" or a prerelease label; empty when unset or false.
	Prerelease string
	Nav        []string
}

// ParseDescriptor decodes descriptor YAML. name and version must be
// present. An explicit null version denotes an unversioned component and
// yields an empty version.
func ParseDescriptor(data []byte, loc Location) (*Descriptor, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &DescriptorInvalidError{Location: loc, Err: err}
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind == 0 {
		return nil, &DescriptorInvalidError{Location: loc, Field: "name", Problem: "missing"}
	}
	if root.Kind != yaml.MappingNode {
		return nil, &DescriptorInvalidError{Location: loc, Problem: "not a mapping", Field: "document"}
	}

	fields := make(map[string]*yaml.Node, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		fields[root.Content[i].Value] = root.Content[i+1]
	}

	d := &Descriptor{}
	var err error
	name, ok := fields["name"]
	if !ok || isNull(name) {
		return nil, &DescriptorInvalidError{Location: loc, Field: "name", Problem: "missing"}
	}
	if d.Name, err = scalar(name, "name", loc); err != nil {
		return nil, err
	}
	if d.Name == "" {
		return nil, &DescriptorInvalidError{Location: loc, Field: "name", Problem: "missing"}
	}

	version, ok := fields["version"]
	if !ok {
		return nil, &DescriptorInvalidError{Location: loc, Field: "version", Problem: "missing"}
	}
	if !isNull(version) {
		if d.Version, err = scalar(version, "version", loc); err != nil {
			return nil, err
		}
	}

	for key, dst := range map[string]*string{
		"title":           &d.Title,
		"display_version": &d.DisplayVersion,
		"start_page":      &d.StartPage,
	} {
		if n, ok := fields[key]; ok && !isNull(n) {
			if *dst, err = scalar(n, key, loc); err != nil {
				return nil, err
			}
		}
	}

	if n, ok := fields["prerelease"]; ok && !isNull(n) {
		v, err := scalar(n, "prerelease", loc)
		if err != nil {
			return nil, err
		}
		if v != "false" {
			d.Prerelease = v
		}
	}

	if n, ok := fields["nav"]; ok && !isNull(n) {
		if n.Kind != yaml.SequenceNode {
			return nil, &DescriptorInvalidError{Location: loc, Field: "nav", Problem: "not a list"}
		}
		for _, item := range n.Content {
			p, err := scalar(item, "nav", loc)
			if err != nil {
				return nil, err
			}
			d.Nav = append(d.Nav, p)
		}
	}
	return d, nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

func scalar(n *yaml.Node, field string, loc Location) (string, error) {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n.Kind != yaml.ScalarNode {
		return "", &DescriptorInvalidError{Location: loc, Field: field, Problem: "not a scalar"}
	}
	return n.Value, nil
}
