package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/WictorCampos/playlist-inteligente/internal/config"
	"github.com/WictorCampos/playlist-inteligente/internal/logging"
	"github.com/WictorCampos/playlist-inteligente/internal/output"
	"github.com/WictorCampos/playlist-inteligente/internal/playlist"
)

type cliOptions struct {
	Provider string
	Limit    int
	JSON     bool
	Plain    bool
	Quiet    bool
	Verbose  bool
	NoColor  bool
	NoInput  bool
}

func (o cliOptions) output() *output.Output {
	return output.New(output.Options{
		JSON:    o.JSON,
		Plain:   o.Plain,
		Quiet:   o.Quiet,
		Verbose: o.Verbose,
		NoColor: o.NoColor || os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb",
	})
}

func bindOutputFlags(fs *pflag.FlagSet, opts *cliOptions) {
	fs.BoolVar(&opts.JSON, "json", false, "Output machine-readable JSON")
	fs.BoolVar(&opts.Plain, "plain", false, "Disable decorative formatting")
	fs.BoolVarP(&opts.Quiet, "quiet", "q", false, "Suppress non-essential output")
	fs.BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable verbose diagnostics")
	fs.BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")
}

func bindPipelineFlags(fs *pflag.FlagSet, opts *cliOptions) {
	fs.StringVarP(&opts.Provider, "provider", "p", opts.Provider, "Preferred AI provider: gemini, claude, openai, grok")
}

func validateProvider(opts *cliOptions) error {
	switch p := strings.ToLower(opts.Provider); p {
	case "claude", "openai", "gemini", "grok":
		opts.Provider = p
	case "xai":
		opts.Provider = "grok"
	default:
		return usageError{msg: "provider must be one of: gemini, claude, openai, grok"}
	}
	return nil
}

func validateOptions(opts *cliOptions) error {
	if err := validateProvider(opts); err != nil {
		return err
	}
	if opts.Limit < 1 || opts.Limit > playlist.MaxLimit {
		return usageError{msg: fmt.Sprintf("limit must be between 1 and %d", playlist.MaxLimit)}
	}
	return nil
}

func newRootCmd(cfg config.Config) *cobra.Command {
	opts := cliOptions{
		Provider: string(cfg.DefaultProvider),
		Limit:    cfg.DefaultLimit,
	}

	root := &cobra.Command{
		Use:           "playlist [text]",
		Short:         "Turn a description of your mood into a Spotify playlist",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.Join([]string{
			`  playlist "hoje estou feliz, quero rock dos anos 80"`,
			`  echo "rainy sunday, some jazz" | playlist --json`,
			`  playlist serve --addr :8000`,
		}, "\n"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOptions(&opts); err != nil {
				return err
			}
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" && !opts.NoInput && !term.IsTerminal(int(os.Stdin.Fd())) {
				text = readTextFromStdin(os.Stdin)
			}
			if text == "" {
				return usageError{msg: strings.Join([]string{
					"Missing text describing your mood.",
					"Examples:",
					`  playlist "estou animado para correr"`,
					`  echo "calm night, lo-fi" | playlist`,
					"Run with --help for usage.",
				}, "\n")}
			}
			return runOnce(cmd.Context(), cfg, opts, text)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{msg: err.Error() + "\n(run with --help for usage)"}
	})

	bindOutputFlags(root.PersistentFlags(), &opts)
	bindPipelineFlags(root.PersistentFlags(), &opts)
	root.Flags().IntVarP(&opts.Limit, "limit", "n", opts.Limit, fmt.Sprintf("Number of tracks (1-%d)", playlist.MaxLimit))
	root.Flags().BoolVar(&opts.NoInput, "no-input", false, "Disable stdin reads")

	root.AddCommand(newServeCmd(cfg, &opts), newLoginCmd(cfg, &opts), newGenresCmd(cfg, &opts))
	return root
}

func runOnce(ctx context.Context, cfg config.Config, opts cliOptions, text string) error {
	out := opts.output()
	logger := logging.Setup(os.Stderr, logging.Level(slog.LevelWarn, opts.Verbose), false)

	app, err := buildApp(ctx, cfg, opts, logger)
	if err != nil {
		return reportSetupError(out, err)
	}
	defer app.Close()

	out.Debug("Using providers: " + strings.Join(app.providers, ", "))

	var resp playlist.Response
	handle := func(ctx context.Context) error {
		var err error
		resp, err = app.generator.Handle(ctx, text, opts.Limit)
		return err
	}
	if useSpinner(opts) {
		err = spinner.New().Title("Building your playlist...").Context(ctx).ActionWithErr(handle).Run()
	} else {
		err = handle(ctx)
	}
	if err != nil {
		var f *playlist.Failure
		if errors.As(err, &f) {
			out.Failure(f)
		}
		return err
	}
	return out.Result(resp)
}

func useSpinner(opts cliOptions) bool {
	return !opts.JSON && !opts.Quiet && !opts.Verbose && term.IsTerminal(int(os.Stdout.Fd()))
}

func readTextFromStdin(r io.Reader) string {
	scanner := bufio.NewScanner(r)
	lines := []string{}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.TrimSpace(strings.Join(lines, " "))
}
