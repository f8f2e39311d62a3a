package github_test

import (
	"testing"

	ghprov "github.com/byte4ever/repohash/webhook/github"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExtractor_default_event(t *testing.T) {
	t.Parallel()

	ex, err := ghprov.NewExtractor(ghprov.Config{})

	require.NoError(t, err)
	assert.NotNil(t, ex)
}

func TestNewExtractor_unsupported_event(t *testing.T) {
	t.Parallel()

	ex, err := ghprov.NewExtractor(ghprov.Config{
		EventType: "star",
	})

	assert.Nil(t, ex)
	assert.ErrorContains(t, err, "unsupported event type")
}

func TestExtractor_RepositoryID_events(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		event   string
		payload string
		want    string
	}{
		{
			name:    "push",
			event:   ghprov.EventPush,
			payload: `{"ref":"refs/heads/main","repository":{"id":12345678,"name":"repo"}}`,
			want:    "12345678",
		},
		{
			name:    "pull request",
			event:   ghprov.EventPullRequest,
			payload: `{"action":"opened","number":1,"repository":{"id":987,"name":"repo"}}`,
			want:    "987",
		},
		{
			name:    "release",
			event:   ghprov.EventRelease,
			payload: `{"action":"published","repository":{"id":55,"name":"repo"}}`,
			want:    "55",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ex, err := ghprov.NewExtractor(ghprov.Config{
				EventType: tt.event,
			})
			require.NoError(t, err)

			got, err := ex.RepositoryID([]byte(tt.payload))

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractor_RepositoryID_missing_id(t *testing.T) {
	t.Parallel()

	ex, err := ghprov.NewExtractor(ghprov.Config{})
	require.NoError(t, err)

	_, err = ex.RepositoryID([]byte(`{"ref":"refs/heads/main"}`))

	assert.ErrorContains(t, err, "no repository.id")
}

func TestExtractor_RepositoryID_malformed(t *testing.T) {
	t.Parallel()

	ex, err := ghprov.NewExtractor(ghprov.Config{})
	require.NoError(t, err)

	_, err = ex.RepositoryID([]byte(`{not json`))

	assert.ErrorContains(
		t, err, "extracting github repository id",
	)
}
