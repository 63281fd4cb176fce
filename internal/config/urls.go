package config

import "git.home.luguber.info/inful/doccatalog/internal/foundation/normalization"

// HTMLExtensionStyle selects how page URLs are published.
type HTMLExtensionStyle string

const (
	// HTMLExtensionDefault publishes pages at their .html path.
	HTMLExtensionDefault HTMLExtensionStyle = "default"
	// HTMLExtensionDrop removes the .html suffix (and a trailing index.html) from URLs.
	HTMLExtensionDrop HTMLExtensionStyle = "drop"
	// HTMLExtensionIndexify writes every page as <stem>/index.html and links to the directory.
	HTMLExtensionIndexify HTMLExtensionStyle = "indexify"
)

var htmlExtensionStyleNormalizer = normalization.NewNormalizer("html extension style", map[string]HTMLExtensionStyle{
	"default":  HTMLExtensionDefault,
	"drop":     HTMLExtensionDrop,
	"indexify": HTMLExtensionIndexify,
}, HTMLExtensionDefault)

// ParseHTMLExtensionStyle parses a style name; empty input yields the default style.
func ParseHTMLExtensionStyle(raw string) (HTMLExtensionStyle, error) {
	return htmlExtensionStyleNormalizer.Parse(raw)
}
