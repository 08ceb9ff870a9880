package cmd

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/detent/triage/internal/debug"
	"github.com/detent/triage/internal/errors"
	"github.com/detent/triage/internal/extract"
	"github.com/detent/triage/internal/output"
	"github.com/detent/triage/internal/sentry"
	"github.com/detent/triage/internal/tui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "triage <input-file>",
		Short: "Group compiler and test diagnostics by error code and symbol",
		Long: `Triage reads diagnostics produced by a compiler or test runner and groups
them by error code and the symbol named in the message, largest group first.

The input is a JSON array, a single JSON object, or newline-delimited JSON
(for example the output of "cargo check --message-format=json"). Only
diagnostics whose level contains "error" are kept; failed test records are
always kept.

Each group holds at most --max-per-group errors. Errors beyond that limit
are left out of the groups but still counted in total_errors.

On failure a JSON object with an "error" key is written to stderr and the
exit status is 1.`,
		Example: `  triage cargo-check.json
  triage build.ndjson --max-per-group 5
  triage build.ndjson -o text --path 'crates/**/*.rs'`,
		Version:       Version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.InputFile = args[0]
			return runTriage(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.MaxPerGroup, "max-per-group", "n", errors.DefaultMaxPerGroup, "maximum errors kept per code/symbol group")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", formatJSON, "output format: json, yaml, text")
	cmd.Flags().StringArrayVar(&opts.Paths, "path", nil, "only keep errors whose file matches this glob (repeatable, ** supported)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log pipeline details to stderr")

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// runTriage runs load, normalize, group and render for one input file.
func runTriage(stdout, stderr io.Writer, opts *options) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &UnexpectedError{Err: sentry.Recover(r), Reported: true}
		}
	}()

	if err := opts.Validate(); err != nil {
		return err
	}

	if opts.Verbose {
		debug.Init(debug.Options{Level: "debug", Writer: stderr, Console: isTerminal(stderr)})
		defer debug.Close()
	}
	log := debug.Get()
	debug.Log("triage %s", Version)

	filter, err := extract.NewPathFilter(opts.Paths)
	if err != nil {
		return err
	}

	records, loadStats, err := extract.Load(opts.InputFile)
	if err != nil {
		return err
	}
	log.Debug().
		Str("file", opts.InputFile).
		Str("mode", string(loadStats.Mode)).
		Int("candidates", loadStats.Candidates).
		Int("records", loadStats.Records).
		Int("non_objects", loadStats.NonObjects).
		Int("invalid_lines", loadStats.InvalidLines).
		Msg("input loaded")
	sentry.AddBreadcrumb("load", fmt.Sprintf("%d records via %s", loadStats.Records, loadStats.Mode))
	sentry.SetTag("output", opts.Output)

	extracted, normStats := extract.NewNormalizer(filter).NormalizeAll(records)
	log.Debug().
		Int("build", normStats.Build).
		Int("test", normStats.Test).
		Int("not_error", normStats.NotError).
		Int("unrecognized", normStats.Unrecognized).
		Int("filtered", normStats.Filtered).
		Msg("records normalized")

	groups, groupStats := errors.GroupByCodeWithStats(extracted, opts.MaxPerGroup)
	log.Debug().
		Int("groups", len(groups)).
		Int("grouped", groupStats.Grouped).
		Int("excluded", groupStats.Excluded).
		Int("max_per_group", opts.MaxPerGroup).
		Msg("errors grouped")

	result := errors.NewResult(extracted, groups)
	if err := render(stdout, opts.Output, result); err != nil {
		return &UnexpectedError{Err: err}
	}

	if opts.Output == formatJSON && isTerminal(stdout) {
		printTextHint(stderr, isTerminal(stderr))
	}
	return nil
}

// printTextHint points someone reading raw JSON in a terminal at the text
// format.
func printTextHint(w io.Writer, color bool) {
	p := tui.NewPalette(w, color)
	fmt.Fprintln(w, p.Muted.Render("hint: use")+" "+p.Accent.Render("-o text")+" "+p.Muted.Render("for a readable summary"))
}

func render(w io.Writer, format string, result *errors.Result) error {
	switch format {
	case formatYAML:
		return output.FormatYAML(w, result)
	case formatText:
		output.FormatText(w, result, isTerminal(w))
		return nil
	default:
		if err := output.FormatJSON(w, result); err != nil {
			return fmt.Errorf("formatting JSON output: %w", err)
		}
		return nil
	}
}

// isTerminal reports whether w is an interactive terminal.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// UnexpectedError marks failures that are not caused by the input or the
// command line.
type UnexpectedError struct {
	Err error
	// Reported is true when the failure was already sent to Sentry.
	Reported bool
}

func (e *UnexpectedError) Error() string {
	return "Unexpected error: " + e.Err.Error()
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}

// ReportError writes err to w as {"error": "..."} and reports unexpected
// failures to Sentry.
func ReportError(w io.Writer, err error) {
	var unexpected *UnexpectedError
	if stderrors.As(err, &unexpected) && !unexpected.Reported {
		sentry.CaptureError(err)
	}
	_ = output.FormatError(w, err.Error())
}
