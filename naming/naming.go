package naming

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/valyala/fasttemplate"
	"k8s.io/apimachinery/pkg/util/validation"

	"github.com/byte4ever/repohash/hasher"
)

// DefaultTemplate is used when Config.Template is
// empty.
const DefaultTemplate = "{prefix}-{hash}"

const hashTag = "{hash}"

// ErrMissingVar is returned by Name when the template
// has a placeholder with no matching variable.
var ErrMissingVar = errors.New("missing template variable")

// Config holds the settings needed to create a Namer.
type Config struct {
	// Template contains single-brace {VAR}
	// placeholders and must contain {hash}.
	Template string
	// Hasher produces the {hash} value. Use hex to
	// get DNS-safe output.
	Hasher *hasher.Hasher
}

// Namer renders names from a template and a hash.
type Namer struct {
	template string
	hasher   *hasher.Hasher
}

// NewNamer validates cfg and returns a Namer.
func NewNamer(cfg Config) (*Namer, error) {
	const errCtx = "creating namer"

	if cfg.Hasher == nil {
		return nil, fmt.Errorf(
			"%s: hasher must be set", errCtx,
		)
	}

	tpl := cfg.Template
	if tpl == "" {
		tpl = DefaultTemplate
	}

	if !strings.Contains(tpl, hashTag) {
		return nil, fmt.Errorf(
			"%s: template %q must contain %s",
			errCtx, tpl, hashTag,
		)
	}

	return &Namer{template: tpl, hasher: cfg.Hasher}, nil
}

// Name hashes value and substitutes it for {hash}, and
// vars for their {KEY} placeholders. A placeholder
// without a variable fails with ErrMissingVar. The
// result must be a DNS-1123 label.
func (na *Namer) Name(
	value string,
	vars map[string]string,
) (string, error) {
	const errCtx = "rendering name"

	sum, err := na.hasher.HashString(value, 0)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	name, err := fasttemplate.ExecuteFuncStringWithErr(
		na.template, "{", "}",
		func(w io.Writer, tag string) (int, error) {
			if tag == "hash" {
				return io.WriteString(w, sum)
			}

			val, ok := vars[tag]
			if !ok {
				return 0, fmt.Errorf("%w %q", ErrMissingVar, tag)
			}

			return io.WriteString(w, val)
		},
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	if errs := validation.IsDNS1123Label(name); len(errs) > 0 {
		return "", fmt.Errorf(
			"%s: %q: %s",
			errCtx, name, strings.Join(errs, "; "),
		)
	}

	return name, nil
}

// LabelValue returns the hash of value, checked as a
// Kubernetes label value.
func (na *Namer) LabelValue(value string) (string, error) {
	const errCtx = "rendering label value"

	sum, err := na.hasher.HashString(value, 0)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	if errs := validation.IsValidLabelValue(sum); len(errs) > 0 {
		return "", fmt.Errorf(
			"%s: %q: %s",
			errCtx, sum, strings.Join(errs, "; "),
		)
	}

	return sum, nil
}
