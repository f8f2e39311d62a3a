package hasher

import (
	"encoding/base64"
	"encoding/hex"
	"strconv"
)

// Encoding selects how a digest is rendered. The zero
// value is Base64.
type Encoding int

const (
	// Base64 renders the digest with standard, padded
	// base64.
	Base64 Encoding = iota
	// Hex renders the digest as lowercase hex.
	Hex
	// Binary returns the raw digest bytes.
	Binary
)

var encodingNames = [...]string{
	Base64: "base64",
	Hex:    "hex",
	Binary: "binary",
}

// Encodings returns every supported encoding in
// declaration order.
func Encodings() []Encoding {
	return []Encoding{Base64, Hex, Binary}
}

// ParseEncoding converts a textual encoding name into
// an Encoding. Names are matched exactly.
func ParseEncoding(name string) (Encoding, error) {
	for _, enc := range Encodings() {
		if encodingNames[enc] == name {
			return enc, nil
		}
	}

	return 0, newInvalidEncodingError(name)
}

// Valid reports whether enc is one of the supported
// encodings.
func (enc Encoding) Valid() bool {
	return enc >= Base64 && enc <= Binary
}

func (enc Encoding) String() string {
	if !enc.Valid() {
		return "Encoding(" + strconv.Itoa(int(enc)) + ")"
	}

	return encodingNames[enc]
}

// MaxLength is the longest output, in characters or
// bytes, that enc can produce from one digest.
func (enc Encoding) MaxLength() int {
	switch enc {
	case Hex:
		return hex.EncodedLen(DigestSize)
	case Binary:
		return DigestSize
	default:
		return base64.StdEncoding.EncodedLen(DigestSize)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (enc Encoding) MarshalText() ([]byte, error) {
	if !enc.Valid() {
		return nil, newInvalidEncodingError(enc.String())
	}

	return []byte(encodingNames[enc]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (enc *Encoding) UnmarshalText(text []byte) error {
	parsed, err := ParseEncoding(string(text))
	if err != nil {
		return err
	}

	*enc = parsed

	return nil
}

// render encodes the full digest. The returned slice
// is freshly allocated and safe to truncate.
func (enc Encoding) render(sum [DigestSize]byte) []byte {
	switch enc {
	case Hex:
		out := make([]byte, hex.EncodedLen(len(sum)))
		hex.Encode(out, sum[:])

		return out
	case Binary:
		out := make([]byte, len(sum))
		copy(out, sum[:])

		return out
	default:
		out := make(
			[]byte,
			base64.StdEncoding.EncodedLen(len(sum)),
		)
		base64.StdEncoding.Encode(out, sum[:])

		return out
	}
}
