// Package config loads, normalizes, and validates foraymatch configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. Worker-count overrides are deliberately
// forgiving: an unusable value falls back to the CPU-derived default at run
// time instead of failing the load, so a bad knob can never block a
// matching run.
//
// Always obtain settings through this package so downstream code receives
// sanitized absolute paths and canonical log formats.
package config
