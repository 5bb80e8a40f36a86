// Package logging assembles structured slog loggers and formatting helpers used
// across logwatch.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attribute helpers so the tailer, the broadcast hub and
// the stream sessions tag their records with the same keys (component,
// viewer_id, position). The package also provides a no-op logger for tests and
// wiring code that cannot fail, plus retention pruning for the server's own
// run logs.
package logging
