// Package config loads, normalizes, and validates logwatch configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the LOG_FILE environment fallback
// for the watched file. The Config type centralizes every knob the server and
// CLI need so the tailer, the stream sessions and the HTTP listener all agree
// on paths, intervals and log routing.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, positive intervals, and clear validation errors.
package config
