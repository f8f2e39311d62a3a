// Package config decodes repohash settings documents. A document may be
// YAML, JSON or TOML and carries the default hash length, the encoding name
// and an optional naming template. Encoding names are validated here, at the
// boundary, so the rest of the module only sees hasher.Encoding values.
//
// Discover looks for a settings file under the XDG config directories.
package config
