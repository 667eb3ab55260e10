// Package config loads, normalizes, and validates kotoba configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// CLI and the ingestion engine need: corpus location, worker pool and retry
// tuning, search result shaping, and log output.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
