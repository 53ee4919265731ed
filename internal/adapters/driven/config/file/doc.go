// Package file provides file-based configuration for sitegen.
//
// ConfigStore persists dot-notation keys to ~/.sitegen/config.toml.
// LoadSettings layers the environment (optionally seeded from a .env file)
// over the TOML file and the built-in defaults.
package file
