package content

import (
	"mime"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Documentation media types not present in the platform table.
const (
	MediaTypeAsciiDoc = "text/asciidoc"
	MediaTypeMarkdown = "text/markdown"
	MediaTypeDefault  = "application/octet-stream"
)

var docTypes = map[string]string{
	".adoc":     MediaTypeAsciiDoc,
	".asciidoc": MediaTypeAsciiDoc,
	".asc":      MediaTypeAsciiDoc,
	".md":       MediaTypeMarkdown,
	".markdown": MediaTypeMarkdown,
}

// MediaTypeOf returns the media type for a file. The extension table is
// consulted first; when it has no entry the contents are sniffed.
func MediaTypeOf(name string, contents []byte) string {
	if mt := MediaTypeByExtension(path.Ext(name)); mt != "" {
		return mt
	}
	if len(contents) == 0 {
		return ""
	}
	mt, _, err := mime.ParseMediaType(mimetype.Detect(contents).String())
	if err != nil || mt == MediaTypeDefault {
		return ""
	}
	return mt
}

// MediaTypeByExtension looks up ext (with leading dot) in the documentation
// table and then the platform table. Parameters such as charset are dropped.
func MediaTypeByExtension(ext string) string {
	if ext == "" {
		return ""
	}
	ext = strings.ToLower(ext)
	if mt, ok := docTypes[ext]; ok {
		return mt
	}
	raw := mime.TypeByExtension(ext)
	if raw == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return ""
	}
	return mt
}
