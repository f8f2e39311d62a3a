package github

import (
	"fmt"
	"log/slog"
	"strconv"

	gh "github.com/google/go-github/v68/github"
)

// Event types accepted by NewExtractor. They match the
// X-GitHub-Event header values.
const (
	EventPush        = "push"
	EventPullRequest = "pull_request"
	EventRelease     = "release"
)

// Config holds the settings needed to create a GitHub
// repository ID extractor.
type Config struct {
	// EventType is the X-GitHub-Event value of the
	// deliveries to parse. Defaults to EventPush.
	EventType string
}

// Extractor reads repository IDs from GitHub webhook
// payloads.
//
// Pattern: Strategy -- implements webhook.IDExtractor.
type Extractor struct {
	eventType string
}

// NewExtractor validates cfg and returns an Extractor
// ready to parse payloads.
func NewExtractor(cfg Config) (*Extractor, error) {
	const errCtx = "creating github extractor"

	eventType := cfg.EventType
	if eventType == "" {
		eventType = EventPush
	}

	switch eventType {
	case EventPush, EventPullRequest, EventRelease:
	default:
		return nil, fmt.Errorf(
			"%s: unsupported event type %q",
			errCtx, eventType,
		)
	}

	return &Extractor{eventType: eventType}, nil
}

// RepositoryID parses payload as a delivery of the
// configured event type and returns repository.id.
func (ex *Extractor) RepositoryID(
	payload []byte,
) (string, error) {
	const errCtx = "extracting github repository id"

	event, err := gh.ParseWebHook(ex.eventType, payload)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	var repoID int64

	switch ev := event.(type) {
	case *gh.PushEvent:
		repoID = ev.GetRepo().GetID()
	case *gh.PullRequestEvent:
		repoID = ev.GetRepo().GetID()
	case *gh.ReleaseEvent:
		repoID = ev.GetRepo().GetID()
	default:
		return "", fmt.Errorf(
			"%s: unexpected event %T", errCtx, event,
		)
	}

	if repoID == 0 {
		return "", fmt.Errorf(
			"%s: payload has no repository.id", errCtx,
		)
	}

	slog.Debug(
		"extracted github repository id",
		"event", ex.eventType,
		"id", repoID,
	)

	return strconv.FormatInt(repoID, 10), nil
}
