// Package logging assembles the slog loggers used by upnext.
//
// It owns the console and JSON handlers, level parsing and output routing,
// plus the attribute helpers and field names components share so every log
// line has the same shape. NewNop gives tests and optional wiring a logger
// that cannot fail.
package logging
