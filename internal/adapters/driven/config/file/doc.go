// Package file provides the TOML-backed settings store. Settings live
// in ~/.journalkit/config.toml with restricted permissions, since the
// file carries API keys.
package file
