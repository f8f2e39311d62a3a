package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/byte4ever/repohash/config"
	"github.com/byte4ever/repohash/hasher"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTemp creates a file with content under dir and
// returns its path.
func writeTemp(
	tb testing.TB,
	dir string,
	name string,
	content string,
) string {
	tb.Helper()

	pa := filepath.Join(dir, name)
	require.NoError(tb, os.MkdirAll(filepath.Dir(pa), 0o700))
	require.NoError(
		tb,
		os.WriteFile(pa, []byte(content), 0o600),
	)

	return pa
}

func TestDecode_formats(t *testing.T) {
	t.Parallel()

	want := &config.File{
		Length:       24,
		Encoding:     "hex",
		NameTemplate: "repo-{hash}",
	}

	tests := []struct {
		name   string
		format config.Format
		input  string
	}{
		{
			name:   "yaml",
			format: config.FormatYAML,
			input: "length: 24\n" +
				"encoding: hex\n" +
				"name_template: \"repo-{hash}\"\n",
		},
		{
			name:   "json",
			format: config.FormatJSON,
			input: `{"length":24,"encoding":"hex",` +
				`"name_template":"repo-{hash}"}`,
		},
		{
			name:   "toml",
			format: config.FormatTOML,
			input: "length = 24\n" +
				"encoding = \"hex\"\n" +
				"name_template = \"repo-{hash}\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := config.Decode(
				[]byte(tt.input), tt.format,
			)

			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestDecode_empty_yaml_keeps_defaults(t *testing.T) {
	t.Parallel()

	got, err := config.Decode(nil, config.FormatYAML)

	require.NoError(t, err)
	assert.Equal(t, &config.File{}, got)
}

func TestDecode_unknown_format(t *testing.T) {
	t.Parallel()

	_, err := config.Decode([]byte("{}"), "ini")

	assert.ErrorContains(t, err, "unknown format")
}

func TestDecode_malformed(t *testing.T) {
	t.Parallel()

	_, err := config.Decode(
		[]byte(`{"length":`), config.FormatJSON,
	)

	assert.ErrorContains(t, err, "decoding config: json")
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want config.Format
	}{
		{path: "a/config.yaml", want: config.FormatYAML},
		{path: "config.YML", want: config.FormatYAML},
		{path: "config.json", want: config.FormatJSON},
		{path: "/etc/repohash/config.toml", want: config.FormatTOML},
	}

	for _, tt := range tests {
		got, err := config.FormatFromPath(tt.path)

		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}

func TestFormatFromPath_unsupported(t *testing.T) {
	t.Parallel()

	_, err := config.FormatFromPath("config.ini")

	assert.ErrorContains(t, err, "unsupported extension")
}

func TestLoad_reads_file(t *testing.T) {
	t.Parallel()

	pa := writeTemp(
		t, t.TempDir(), "settings.toml",
		"length = 8\nencoding = \"binary\"\n",
	)

	got, err := config.Load(pa)

	require.NoError(t, err)
	assert.Equal(t, 8, got.Length)
	assert.Equal(t, "binary", got.Encoding)
}

func TestLoad_missing_file(t *testing.T) {
	t.Parallel()

	_, err := config.Load("/nonexistent/config.yaml")

	require.Error(t, err)
	assert.ErrorContains(t, err, "loading config")
}

func TestLoad_reports_path_on_decode_error(t *testing.T) {
	t.Parallel()

	pa := writeTemp(
		t, t.TempDir(), "bad.json", "not json",
	)

	_, err := config.Load(pa)

	assert.ErrorContains(t, err, pa)
}

func TestFile_HasherConfig(t *testing.T) {
	t.Parallel()

	fi := &config.File{Length: 20, Encoding: "hex"}

	got, err := fi.HasherConfig()

	require.NoError(t, err)
	assert.Equal(
		t,
		hasher.Config{Length: 20, Encoding: hasher.Hex},
		got,
	)
}

func TestFile_HasherConfig_empty_encoding(t *testing.T) {
	t.Parallel()

	got, err := (&config.File{}).HasherConfig()

	require.NoError(t, err)
	assert.Equal(t, hasher.DefaultEncoding, got.Encoding)
	assert.Zero(t, got.Length)
}

func TestFile_HasherConfig_invalid_encoding(t *testing.T) {
	t.Parallel()

	_, err := (&config.File{Encoding: "xyz"}).HasherConfig()

	assert.ErrorIs(t, err, hasher.ErrInvalidEncoding)
}

func TestFile_NewHasher(t *testing.T) {
	t.Parallel()

	ha, err := (&config.File{
		Length:   16,
		Encoding: "hex",
	}).NewHasher()
	require.NoError(t, err)

	got, err := ha.HashString("abc123", 0)

	require.NoError(t, err)
	assert.Equal(t, "6ca13d52ca70c883", got)
}

func TestFile_NewHasher_invalid_length(t *testing.T) {
	t.Parallel()

	_, err := (&config.File{Length: 65}).NewHasher()

	assert.ErrorIs(t, err, hasher.ErrLengthOutOfBounds)
}

// Not parallel: Discover reads process-wide XDG state.
func TestDiscover(t *testing.T) {
	home := t.TempDir()
	dirs := t.TempDir()

	// Registered first so it runs after the env is
	// restored.
	t.Cleanup(xdg.Reload)

	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("XDG_CONFIG_DIRS", dirs)
	xdg.Reload()

	assert.Empty(t, config.Discover())

	want := writeTemp(
		t, dirs, filepath.Join(config.AppName, "config.json"),
		`{"length":10}`,
	)
	assert.Equal(t, want, config.Discover())

	// YAML in the user config dir wins.
	want = writeTemp(
		t, home, filepath.Join(config.AppName, "config.yaml"),
		"length: 12\n",
	)
	assert.Equal(t, want, config.Discover())
}
