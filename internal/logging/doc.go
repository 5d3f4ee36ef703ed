// Package logging constructs slog loggers for the CLI and core components.
//
// It supports console and JSON output formats, maps config log levels onto
// slog levels, and exposes small helpers (attr constructors, component
// loggers, a nop logger) so callers never import log/slog conventions
// piecemeal.
package logging
