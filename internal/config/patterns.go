package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Patterns is a list of ref patterns. In YAML it may be written as a
// sequence or as a single comma-separated scalar.
type Patterns []string

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (p *Patterns) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*p = nil
			return nil
		}
		*p = SplitPatterns(node.Value)
		return nil
	case yaml.SequenceNode:
		out := make(Patterns, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: pattern must be a string", item.Line)
			}
			if v := strings.TrimSpace(item.Value); v != "" {
				out = append(out, v)
			}
		}
		*p = out
		return nil
	default:
		return fmt.Errorf("line %d: patterns must be a string or a list", node.Line)
	}
}

// SplitPatterns splits a comma-separated list, trimming blanks. Commas
// inside braces belong to the pattern.
func SplitPatterns(s string) Patterns {
	var out Patterns
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				if v := strings.TrimSpace(s[start:i]); v != "" {
					out = append(out, v)
				}
				start = i + 1
			}
		}
	}
	if v := strings.TrimSpace(s[start:]); v != "" {
		out = append(out, v)
	}
	return out
}
