package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyPath       = "path"
	KeyOutput     = "output"
	KeyLanguage   = "language"
	KeyStage      = "stage"
	KeyOutcome    = "outcome"
	KeyEngine     = "engine"
	KeyProtocol   = "protocol"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Output(p string) slog.Attr       { return slog.String(KeyOutput, p) }
func Language(l string) slog.Attr     { return slog.String(KeyLanguage, l) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Outcome(kind string) slog.Attr   { return slog.String(KeyOutcome, kind) }
func Engine(name string) slog.Attr    { return slog.String(KeyEngine, name) }
func Protocol(name string) slog.Attr  { return slog.String(KeyProtocol, name) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
