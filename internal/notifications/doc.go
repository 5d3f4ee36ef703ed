// Package notifications delivers catalog events via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when notifications are
// disabled. Per-event toggles let users opt in to scan results, duplicate
// reports, and errors independently.
//
// Extend this package if you need alternative transports; command code
// depends only on the simple Service interface.
package notifications
