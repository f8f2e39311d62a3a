// Command repohash prints truncated SHA-256 digests of
// values read from arguments or stdin. It can also
// fingerprint the repository of a webhook payload and
// render Kubernetes-safe names from a template.
package main

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	gl "gitlab.com/gitlab-org/api/client-go"
	"golang.org/x/term"

	"github.com/byte4ever/repohash/config"
	"github.com/byte4ever/repohash/hasher"
	"github.com/byte4ever/repohash/naming"
	"github.com/byte4ever/repohash/webhook"
	"github.com/byte4ever/repohash/webhook/bitbucket"
	"github.com/byte4ever/repohash/webhook/github"
	"github.com/byte4ever/repohash/webhook/gitlab"
)

var errNoInput = errors.New("no input")

var dim = color.New(color.Faint).SprintFunc()

// options holds the parsed flag values.
type options struct {
	length       int
	encoding     string
	configPath   string
	webhook      string
	event        string
	name         bool
	nameTemplate string
	vars         map[string]string
	verbose      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "repohash [value...]",
		Short: "Print truncated SHA-256 digests",
		Long: `Print truncated SHA-256 digests of values.

Values come from the arguments or, when there are none,
one per line from stdin. Settings are read from the
config file (--config, or repohash/config.{yaml,yml,json,toml}
in the XDG config dirs) and overridden by flags.

Examples:
  # Hex digest, 12 characters
  repohash -e hex -l 12 abc123

  # Fingerprint the repository of a GitHub push delivery
  repohash --webhook github --event push < payload.json

  # Render a DNS-safe name. The default template
  # {prefix}-{hash} needs --var prefix=...
  repohash -e hex --var prefix=app abc123

  # Custom template without variables
  repohash -e hex --name-template 'app-{hash}' abc123`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	fl := cmd.Flags()
	fl.IntVarP(
		&opts.length, "length", "l", hasher.DefaultLength,
		"Output length in characters (bytes for binary)",
	)
	fl.StringVarP(
		&opts.encoding, "encoding", "e",
		hasher.DefaultEncoding.String(),
		"Output encoding: base64, hex, or binary",
	)
	fl.StringVarP(
		&opts.configPath, "config", "c", "",
		"Settings file (yaml, json, or toml)",
	)
	fl.StringVar(
		&opts.webhook, "webhook", "",
		"Read a webhook payload from stdin: github, "+
			"gitlab, or bitbucket",
	)
	fl.StringVar(
		&opts.event, "event", "",
		"Webhook event type (X-GitHub-Event or "+
			"X-Gitlab-Event value)",
	)
	fl.BoolVar(
		&opts.name, "name", false,
		"Render names from the name template",
	)
	fl.StringVar(
		&opts.nameTemplate, "name-template", "",
		"Name template with {hash} and {KEY} "+
			"placeholders (implies --name)",
	)
	fl.StringToStringVar(
		&opts.vars, "var", nil,
		"Template variable KEY=VALUE (repeatable, "+
			"implies --name)",
	)
	fl.BoolVar(
		&opts.verbose, "verbose", false,
		"Enable debug logging",
	)

	return cmd
}

func run(
	cmd *cobra.Command,
	opts *options,
	args []string,
) error {
	const errCtx = "running repohash"

	if opts.verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	file, err := loadSettings(opts.configPath)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	ha, err := newHasher(cmd, opts, file)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	render, err := newRenderer(cmd, opts, file, ha)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	out := cmd.OutOrStdout()
	binary := ha.Encoding() == hasher.Binary
	tty := isTerminal(out)
	raw := binary && !tty

	if opts.webhook != "" {
		if len(args) > 0 {
			return fmt.Errorf(
				"%s: webhook mode takes no arguments", errCtx,
			)
		}

		sum, err := runWebhook(cmd, opts, ha, render)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		if binary && tty {
			sum = hex.EncodeToString([]byte(sum))
		}

		return writeSums(out, raw, []string{sum}, nil)
	}

	values, err := readValues(cmd.InOrStdin(), args)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	sums := make([]string, 0, len(values))

	for _, value := range values {
		sum, err := render(value)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		if binary && tty {
			sum = hex.EncodeToString([]byte(sum))
		}

		sums = append(sums, sum)
	}

	if err := writeSums(out, raw, sums, values); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// loadSettings reads the settings file at path, or the
// discovered one when path is empty. A missing
// discovered file yields empty settings.
func loadSettings(path string) (*config.File, error) {
	if path == "" {
		path = config.Discover()
	}

	if path == "" {
		return &config.File{}, nil
	}

	slog.Debug("loading settings", "path", path)

	return config.Load(path)
}

// newHasher builds a Hasher from file and applies the
// flags the user set explicitly, encoding first.
func newHasher(
	cmd *cobra.Command,
	opts *options,
	file *config.File,
) (*hasher.Hasher, error) {
	ha, err := file.NewHasher()
	if err != nil {
		return nil, err
	}

	fl := cmd.Flags()

	if fl.Changed("encoding") {
		enc, err := hasher.ParseEncoding(opts.encoding)
		if err != nil {
			return nil, err
		}

		if err := ha.SetEncoding(enc); err != nil {
			return nil, err
		}
	}

	if fl.Changed("length") {
		if err := ha.SetLength(opts.length); err != nil {
			return nil, err
		}
	}

	slog.Debug(
		"hasher ready",
		"length", ha.Length(),
		"encoding", ha.Encoding(),
	)

	return ha, nil
}

// newRenderer returns the function turning one value
// into its output: a plain hash, or a name when naming
// is enabled.
func newRenderer(
	cmd *cobra.Command,
	opts *options,
	file *config.File,
	ha *hasher.Hasher,
) (func(string) (string, error), error) {
	if !namingEnabled(cmd, opts) {
		return func(value string) (string, error) {
			return ha.HashString(value, 0)
		}, nil
	}

	tpl := file.NameTemplate
	if cmd.Flags().Changed("name-template") {
		tpl = opts.nameTemplate
	}

	na, err := naming.NewNamer(naming.Config{
		Template: tpl,
		Hasher:   ha,
	})
	if err != nil {
		return nil, err
	}

	return func(value string) (string, error) {
		return na.Name(value, opts.vars)
	}, nil
}

// namingEnabled reports whether --name was given or
// implied by --name-template or --var.
func namingEnabled(cmd *cobra.Command, opts *options) bool {
	fl := cmd.Flags()

	return opts.name ||
		fl.Changed("name-template") ||
		fl.Changed("var")
}

// runWebhook reads one payload from stdin and returns
// the output for its repository.
func runWebhook(
	cmd *cobra.Command,
	opts *options,
	ha *hasher.Hasher,
	render func(string) (string, error),
) (string, error) {
	ex, err := newExtractor(opts.webhook, opts.event)
	if err != nil {
		return "", err
	}

	payload, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading payload: %w", err)
	}

	if !namingEnabled(cmd, opts) {
		return webhook.Fingerprint(ex, ha, payload)
	}

	repoID, err := ex.RepositoryID(payload)
	if err != nil {
		return "", err
	}

	return render(repoID)
}

// newExtractor creates a webhook.IDExtractor based on
// the server name. Pattern: Factory -- selects platform
// implementation at runtime.
func newExtractor(
	server string,
	event string,
) (webhook.IDExtractor, error) {
	const errCtx = "creating extractor"

	var fn webhook.IDExtractorFunc

	switch server {
	case "github":
		ex, err := github.NewExtractor(github.Config{
			EventType: event,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		fn = ex.RepositoryID

	case "gitlab":
		ex, err := gitlab.NewExtractor(gitlab.Config{
			EventType: gl.EventType(event),
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		fn = ex.RepositoryID

	case "bitbucket":
		fn = bitbucket.NewExtractor().RepositoryID

	default:
		return nil, fmt.Errorf(
			"%s: unknown server %q", errCtx, server,
		)
	}

	return fn, nil
}

// readValues returns args, or the lines of in when
// there are no args. An interactive stdin is refused.
func readValues(in io.Reader, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	if isTerminal(in) {
		return nil, errNoInput
	}

	var values []string

	// Lines have no length limit, unlike bufio.Scanner.
	rd := bufio.NewReader(in)

	for {
		line, err := rd.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			values = append(values, strings.TrimSuffix(line, "\r"))
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
	}

	if len(values) == 0 {
		return nil, errNoInput
	}

	return values, nil
}

// writeSums prints sums. In raw mode the bytes are
// written back to back. Otherwise sums go one per line,
// each followed by its dimmed value when there are
// several.
func writeSums(
	out io.Writer,
	raw bool,
	sums []string,
	values []string,
) error {
	if raw {
		for _, sum := range sums {
			if _, err := io.WriteString(out, sum); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
		}

		return nil
	}

	echo := len(sums) > 1 && len(values) == len(sums)

	for i, sum := range sums {
		line := sum
		if echo {
			line += "  " + dim(values[i])
		}

		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	return nil
}

// isTerminal reports whether v is an *os.File attached
// to a terminal.
func isTerminal(v any) bool {
	fi, ok := v.(*os.File)

	return ok && term.IsTerminal(int(fi.Fd())) //nolint:gosec // fd fits in int
}
