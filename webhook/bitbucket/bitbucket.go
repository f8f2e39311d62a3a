package bitbucket

import (
	"fmt"
	"log/slog"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Extractor reads repository identifiers from
// Bitbucket Cloud and Bitbucket Server webhook
// payloads.
//
// Pattern: Strategy -- implements webhook.IDExtractor.
type Extractor struct{}

type repository struct {
	// UUID is set by Bitbucket Cloud, in braces.
	UUID     string `json:"uuid,omitempty"`
	FullName string `json:"full_name,omitempty"`
	// ID is set by Bitbucket Server.
	ID   int64  `json:"id,omitempty"`
	Slug string `json:"slug,omitempty"`
}

type event struct {
	Repository *repository `json:"repository,omitempty"`
}

// NewExtractor returns an Extractor. Bitbucket needs
// no configuration: Cloud and Server payloads are told
// apart by their repository fields.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// RepositoryID returns repository.uuid verbatim
// (braces included) for Cloud payloads, or
// repository.id as a decimal string for Server
// payloads.
func (ex *Extractor) RepositoryID(
	payload []byte,
) (string, error) {
	const errCtx = "extracting bitbucket repository id"

	var ev event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return "", fmt.Errorf(
			"%s: unmarshal payload: %w", errCtx, err,
		)
	}

	repo := ev.Repository
	if repo == nil {
		return "", fmt.Errorf(
			"%s: payload has no repository", errCtx,
		)
	}

	if repo.UUID != "" {
		if _, err := uuid.Parse(repo.UUID); err != nil {
			return "", fmt.Errorf(
				"%s: repository.uuid %q: %w",
				errCtx, repo.UUID, err,
			)
		}

		slog.Debug(
			"extracted bitbucket cloud repository uuid",
			"repo", repo.FullName,
			"uuid", repo.UUID,
		)

		return repo.UUID, nil
	}

	if repo.ID != 0 {
		slog.Debug(
			"extracted bitbucket server repository id",
			"repo", repo.Slug,
			"id", repo.ID,
		)

		return strconv.FormatInt(repo.ID, 10), nil
	}

	return "", fmt.Errorf(
		"%s: repository has neither uuid nor id",
		errCtx,
	)
}
