package hasher

import (
	"crypto/sha256"
	"fmt"
	"sync"
)

const (
	// DigestSize is the size in bytes of the untruncated
	// digest.
	DigestSize = sha256.Size

	// DefaultLength is the output length of a new
	// Hasher.
	DefaultLength = 16

	// DefaultEncoding is the encoding of a new Hasher.
	DefaultEncoding = Base64

	// MaxLength is the ceiling SetLength enforces for
	// every encoding. Hash enforces the tighter
	// per-encoding Encoding.MaxLength.
	MaxLength = 64
)

// Config holds construction overrides for New.
type Config struct {
	// Length is the default output length. Zero keeps
	// DefaultLength.
	Length int
	// Encoding is the default encoding. The zero value
	// is Base64.
	Encoding Encoding
}

// Hasher produces truncated SHA-256 digests using a
// mutable default length and encoding. It is safe for
// concurrent use.
type Hasher struct {
	mu       sync.RWMutex
	length   int
	encoding Encoding
}

// New returns a Hasher with DefaultLength and
// DefaultEncoding, overridden by cfg. The encoding is
// applied before the length so the length check sees
// the requested encoding.
func New(cfg Config) (*Hasher, error) {
	const errCtx = "creating hasher"

	ha := &Hasher{
		length:   DefaultLength,
		encoding: DefaultEncoding,
	}

	if err := ha.SetEncoding(cfg.Encoding); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if cfg.Length != 0 {
		if err := ha.SetLength(cfg.Length); err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	return ha, nil
}

// Digest returns the untruncated SHA-256 of value.
func Digest(value string) [DigestSize]byte {
	return sha256.Sum256([]byte(value))
}

// SetLength sets the default output length. It rejects
// lengths below 1 or above MaxLength; the error carries
// the current encoding's maximum. A length accepted
// here can still exceed that maximum, in which case
// Hash fails until the length or encoding changes.
func (ha *Hasher) SetLength(length int) error {
	const errCtx = "setting length"

	ha.mu.Lock()
	defer ha.mu.Unlock()

	if length < 1 || length > MaxLength {
		return fmt.Errorf(
			"%s: %w",
			errCtx, newLengthError(ha.encoding.MaxLength()),
		)
	}

	ha.length = length

	return nil
}

// SetEncoding sets the default encoding. The stored
// length is not re-validated.
func (ha *Hasher) SetEncoding(enc Encoding) error {
	const errCtx = "setting encoding"

	if !enc.Valid() {
		return fmt.Errorf(
			"%s: %w",
			errCtx, newInvalidEncodingError(enc.String()),
		)
	}

	ha.mu.Lock()
	ha.encoding = enc
	ha.mu.Unlock()

	return nil
}

// Length returns the default output length.
func (ha *Hasher) Length() int {
	ha.mu.RLock()
	defer ha.mu.RUnlock()

	return ha.length
}

// Encoding returns the default encoding.
func (ha *Hasher) Encoding() Encoding {
	ha.mu.RLock()
	defer ha.mu.RUnlock()

	return ha.encoding
}

// Config returns a snapshot of the current defaults.
func (ha *Hasher) Config() Config {
	ha.mu.RLock()
	defer ha.mu.RUnlock()

	return Config{Length: ha.length, Encoding: ha.encoding}
}

// WithLength returns a copy of ha whose default length
// is length. ha is left unchanged.
func (ha *Hasher) WithLength(length int) (*Hasher, error) {
	const errCtx = "deriving hasher"

	cl := ha.clone()

	if err := cl.SetLength(length); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return cl, nil
}

// WithEncoding returns a copy of ha whose default
// encoding is enc. ha is left unchanged.
func (ha *Hasher) WithEncoding(enc Encoding) (*Hasher, error) {
	const errCtx = "deriving hasher"

	cl := ha.clone()

	if err := cl.SetEncoding(enc); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return cl, nil
}

// Hash digests value and returns the first n units of
// its rendering in the default encoding: characters
// for base64 and hex, raw bytes for binary. n is
// hashLength when non-zero and the default length
// otherwise. It fails when n is negative or exceeds
// the encoding's maximum. A negative n is an error,
// not an empty result.
func (ha *Hasher) Hash(
	value string,
	hashLength int,
) ([]byte, error) {
	const errCtx = "hashing value"

	cfg := ha.Config()

	length := cfg.Length
	if hashLength != 0 {
		length = hashLength
	}

	maxLength := cfg.Encoding.MaxLength()
	if length < 1 || length > maxLength {
		return nil, fmt.Errorf(
			"%s: %w", errCtx, newLengthError(maxLength),
		)
	}

	return cfg.Encoding.render(Digest(value))[:length], nil
}

// HashString is Hash returning a string. For Binary the
// string holds the raw digest bytes.
func (ha *Hasher) HashString(
	value string,
	hashLength int,
) (string, error) {
	out, err := ha.Hash(value, hashLength)
	if err != nil {
		return "", err
	}

	return string(out), nil
}

func (ha *Hasher) clone() *Hasher {
	cfg := ha.Config()

	return &Hasher{length: cfg.Length, encoding: cfg.Encoding}
}
