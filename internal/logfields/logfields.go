package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyCollection = "collection"
	KeyDocument   = "document"
	KeyVariant    = "variant"
	KeyPath       = "path"
	KeyOutput     = "output"
	KeyCount      = "count"
	KeyHref       = "href"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr        { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr        { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr    { return slog.Float64(KeyDurationMS, ms) }
func Collection(c string) slog.Attr      { return slog.String(KeyCollection, c) }
func Document(name string) slog.Attr     { return slog.String(KeyDocument, name) }
func Variant(v string) slog.Attr         { return slog.String(KeyVariant, v) }
func Path(p string) slog.Attr            { return slog.String(KeyPath, p) }
func Output(p string) slog.Attr          { return slog.String(KeyOutput, p) }
func Count(n int) slog.Attr              { return slog.Int(KeyCount, n) }
func Href(h string) slog.Attr            { return slog.String(KeyHref, h) }
func Method(m string) slog.Attr          { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr          { return slog.Int(KeyStatus, code) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
