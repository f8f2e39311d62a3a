package hasher

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var (
	// ErrLengthOutOfBounds matches every
	// *LengthOutOfBoundsError.
	ErrLengthOutOfBounds = errors.New("length out of bounds")
	// ErrInvalidEncoding matches every
	// *InvalidEncodingError.
	ErrInvalidEncoding = errors.New("invalid encoding")
)

// LengthOutOfBoundsError reports a requested length
// outside what the active encoding allows.
type LengthOutOfBoundsError struct {
	// Max is the maximum length of the encoding that
	// was active when the error was raised.
	Max int
}

func newLengthError(maxLength int) *LengthOutOfBoundsError {
	slog.Debug("length out of bounds", "max", maxLength)

	return &LengthOutOfBoundsError{Max: maxLength}
}

func (e *LengthOutOfBoundsError) Error() string {
	return fmt.Sprintf(
		"value must be between 1-%d characters"+
			" for the current encoding",
		e.Max,
	)
}

// Is makes errors.Is(err, ErrLengthOutOfBounds) hold.
func (e *LengthOutOfBoundsError) Is(target error) bool {
	return target == ErrLengthOutOfBounds
}

// InvalidEncodingError reports an encoding that is not
// one of Encodings().
type InvalidEncodingError struct {
	// Value is the rejected encoding as given.
	Value string
	// Supported lists the accepted encodings.
	Supported []Encoding
}

func newInvalidEncodingError(
	value string,
) *InvalidEncodingError {
	slog.Debug("invalid encoding", "value", value)

	return &InvalidEncodingError{
		Value:     value,
		Supported: Encodings(),
	}
}

func (e *InvalidEncodingError) Error() string {
	names := make([]string, 0, len(e.Supported))
	for _, enc := range e.Supported {
		names = append(names, enc.String())
	}

	return fmt.Sprintf(
		"invalid encoding %q: supported encodings are %s",
		e.Value, strings.Join(names, ", "),
	)
}

// Is makes errors.Is(err, ErrInvalidEncoding) hold.
func (e *InvalidEncodingError) Is(target error) bool {
	return target == ErrInvalidEncoding
}
