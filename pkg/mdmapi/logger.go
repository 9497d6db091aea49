package mdmapi

// Logger is the structured logging interface consumed by the dispatch layer.
// internal/logging provides a zerolog-backed implementation.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}
