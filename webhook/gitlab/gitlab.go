package gitlab

import (
	"fmt"
	"log/slog"

	gl "gitlab.com/gitlab-org/api/client-go"
)

// Config holds the settings needed to create a GitLab
// project ID extractor.
type Config struct {
	// EventType is the X-Gitlab-Event value of the
	// deliveries to parse. Defaults to
	// gl.EventTypePush.
	EventType gl.EventType
}

// Extractor reads project IDs from GitLab webhook
// payloads.
//
// Pattern: Strategy -- implements webhook.IDExtractor.
type Extractor struct {
	eventType gl.EventType
}

// NewExtractor validates cfg and returns an Extractor
// ready to parse payloads.
func NewExtractor(cfg Config) (*Extractor, error) {
	const errCtx = "creating gitlab extractor"

	eventType := cfg.EventType
	if eventType == "" {
		eventType = gl.EventTypePush
	}

	switch eventType {
	case gl.EventTypePush, gl.EventTypeTagPush:
	default:
		return nil, fmt.Errorf(
			"%s: unsupported event type %q",
			errCtx, eventType,
		)
	}

	return &Extractor{eventType: eventType}, nil
}

// RepositoryID parses payload as a delivery of the
// configured event type and returns project_id,
// falling back to project.id.
func (ex *Extractor) RepositoryID(
	payload []byte,
) (string, error) {
	const errCtx = "extracting gitlab project id"

	event, err := gl.ParseWebhook(ex.eventType, payload)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	var projectID string

	switch ev := event.(type) {
	case *gl.PushEvent:
		projectID = formatID(ev.ProjectID, ev.Project.ID)
	case *gl.TagEvent:
		projectID = formatID(ev.ProjectID, ev.Project.ID)
	default:
		return "", fmt.Errorf(
			"%s: unexpected event %T", errCtx, event,
		)
	}

	if projectID == "" {
		return "", fmt.Errorf(
			"%s: payload has no project id", errCtx,
		)
	}

	slog.Debug(
		"extracted gitlab project id",
		"event", string(ex.eventType),
		"id", projectID,
	)

	return projectID, nil
}

// formatID renders the first non-zero ID, or "" when
// both are zero.
func formatID[T ~int | ~int64](ids ...T) string {
	for _, id := range ids {
		if id != 0 {
			return fmt.Sprintf("%d", id)
		}
	}

	return ""
}
