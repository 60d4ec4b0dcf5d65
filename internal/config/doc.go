// Package config loads, normalizes, and validates cardforge configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// CHROME_PATH. The Config type centralizes every knob the CLI needs, so the
// editor URL, browser launch settings, and order constants are discovered in
// one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
