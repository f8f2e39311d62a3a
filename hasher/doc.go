// Package hasher produces short, deterministic SHA-256 digests of strings.
// A Hasher holds a default output length and Encoding (base64, hex or raw
// binary) and truncates the encoded digest to that length. Every encoding has
// its own maximum length, derived from the 32-byte digest: 44 for base64, 64
// for hex and 32 for binary.
//
// Truncation is applied to the rendered form, so a shorter hex or base64 hash
// is always a prefix of the full-length one.
package hasher
