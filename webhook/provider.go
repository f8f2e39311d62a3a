package webhook

import (
	"errors"
	"fmt"

	"github.com/byte4ever/repohash/hasher"
)

// Pattern: Strategy -- swap hosting platform without
// changing how repositories are fingerprinted.

// ErrEmptyPayload is returned by IDExtractorFunc when
// it is handed no payload.
var ErrEmptyPayload = errors.New("empty payload")

// IDExtractor pulls a repository identifier out of a
// webhook payload.
type IDExtractor interface {
	RepositoryID(payload []byte) (string, error)
}

// IDExtractorFunc adapts a plain function to the
// IDExtractor interface. Empty payloads are rejected
// before the function is called.
type IDExtractorFunc func(payload []byte) (string, error)

// RepositoryID delegates to the wrapped function.
func (f IDExtractorFunc) RepositoryID(
	payload []byte,
) (string, error) {
	if len(payload) == 0 {
		return "", ErrEmptyPayload
	}

	return f(payload)
}

// Fingerprint extracts the repository identifier from
// payload and hashes it with the defaults of ha.
func Fingerprint(
	ex IDExtractor,
	ha *hasher.Hasher,
	payload []byte,
) (string, error) {
	const errCtx = "fingerprinting repository"

	repoID, err := ex.RepositoryID(payload)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	sum, err := ha.HashString(repoID, 0)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return sum, nil
}
