package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/byte4ever/repohash/hasher"
)

// Format names a settings document syntax.
type Format string

// Supported document formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// AppName is the directory searched under each XDG
// config directory.
const AppName = "repohash"

// discoverNames lists the file names Discover tries,
// in order.
var discoverNames = []string{
	"config.yaml",
	"config.yml",
	"config.json",
	"config.toml",
}

// File mirrors a settings document. Zero values mean
// "keep the default".
type File struct {
	// Length is the default hash length.
	Length int `json:"length" toml:"length" yaml:"length"`
	// Encoding is an encoding name such as "hex".
	Encoding string `json:"encoding" toml:"encoding" yaml:"encoding"`
	// NameTemplate is the naming.Namer template.
	NameTemplate string `json:"name_template" toml:"name_template" yaml:"name_template"`
}

// FormatFromPath picks a Format from the extension of
// path.
func FormatFromPath(path string) (Format, error) {
	const errCtx = "detecting config format"

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf(
			"%s: unsupported extension %q in %s",
			errCtx, ext, path,
		)
	}
}

// Decode parses data as a settings document in the
// given format.
func Decode(data []byte, format Format) (*File, error) {
	const errCtx = "decoding config"

	var (
		fi  File
		err error
	)

	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &fi)
	case FormatJSON:
		err = json.Unmarshal(data, &fi)
	case FormatTOML:
		err = toml.Unmarshal(data, &fi)
	default:
		return nil, fmt.Errorf(
			"%s: unknown format %q", errCtx, format,
		)
	}

	if err != nil {
		return nil, fmt.Errorf(
			"%s: %s: %w", errCtx, format, err,
		)
	}

	return &fi, nil
}

// Load reads and decodes the settings file at path.
// The format follows the file extension.
func Load(path string) (*File, error) {
	const errCtx = "loading config"

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided by design
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	fi, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: %s: %w", errCtx, path, err,
		)
	}

	return fi, nil
}

// Discover returns the first repohash settings file
// found in the XDG config directories, or "" when none
// exists.
func Discover() string {
	for _, name := range discoverNames {
		path, err := xdg.SearchConfigFile(
			filepath.Join(AppName, name),
		)
		if err == nil {
			return path
		}
	}

	return ""
}

// HasherConfig converts the document into a
// hasher.Config, validating the encoding name.
func (fi *File) HasherConfig() (hasher.Config, error) {
	const errCtx = "converting config"

	cfg := hasher.Config{Length: fi.Length}

	if fi.Encoding != "" {
		enc, err := hasher.ParseEncoding(fi.Encoding)
		if err != nil {
			return hasher.Config{}, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		cfg.Encoding = enc
	}

	return cfg, nil
}

// NewHasher builds a hasher.Hasher from the document.
func (fi *File) NewHasher() (*hasher.Hasher, error) {
	const errCtx = "building hasher from config"

	cfg, err := fi.HasherConfig()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	ha, err := hasher.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return ha, nil
}
