// Package config loads, normalizes, and validates tagpress configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files from ~/.config/tagpress/config.toml or a
// project-local tagpress.toml. The Config type centralizes every knob the CLI
// needs: identifier structure, sheet geometry, QR parameters, and file
// locations.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors before a run starts.
package config
