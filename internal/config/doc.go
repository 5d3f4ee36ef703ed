// Package config loads, normalizes, and validates libriscan configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// LIBRISCAN_NTFY_TOPIC. Always obtain settings through this package so
// downstream code receives sanitized paths and clear validation errors.
package config
