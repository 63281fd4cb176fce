package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyRepo       = "repository"
	KeyURL        = "url"
	KeyPath       = "path"
	KeyName       = "name"
	KeyRef        = "ref"
	KeyRefType    = "ref_type"
	KeyComponent  = "component"
	KeyVersion    = "version"
	KeyModule     = "module"
	KeyFamily     = "family"
	KeyFile       = "file"
	KeyStartPath  = "start_path"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Repository(r string) slog.Attr   { return slog.String(KeyRepo, r) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Name(n string) slog.Attr         { return slog.String(KeyName, n) }
func Ref(r string) slog.Attr          { return slog.String(KeyRef, r) }
func RefType(t string) slog.Attr      { return slog.String(KeyRefType, t) }
func Component(c string) slog.Attr    { return slog.String(KeyComponent, c) }
func Version(v string) slog.Attr      { return slog.String(KeyVersion, v) }
func Module(m string) slog.Attr       { return slog.String(KeyModule, m) }
func Family(f string) slog.Attr       { return slog.String(KeyFamily, f) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func StartPath(p string) slog.Attr    { return slog.String(KeyStartPath, p) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
