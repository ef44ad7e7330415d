package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/wekanimport/internal/cmd/alerts"
	"github.com/agentstation/wekanimport/internal/cmd/hints"
	"github.com/agentstation/wekanimport/internal/cmd/output"
	"github.com/agentstation/wekanimport/pkg/errors"
	"github.com/agentstation/wekanimport/pkg/importer"
	"github.com/agentstation/wekanimport/pkg/logging"
)

// Execute runs the wekanimport CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root command. The root command is the import
// itself; version and man are the only subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "wekanimport --file <rows> --json <board.json> --swimlane <name> [--output <path>]",
		Short:   "Import spreadsheet rows as cards into a Wekan board export",
		Version: a.version,
		Long: `wekanimport merges the rows of a spreadsheet (.xlsx or .csv) into an
exported Wekan board. Every row after the two header rows becomes one card in
the requested swimlane, which is created when no existing swimlane matches.

Columns: title, description, assignee, start date, due date, list, labels.
Assignees, lists and labels are matched against the board by name; a row whose
list cannot be found is reported and skipped.

Dates are read as YYYY-MM-DD or day first as DD/MM/YYYY, so 01/10/2023 is
1 October 2023. Spreadsheet date cells need no particular format.

Without --output the merged board is written to standard output.`,
		Example: `  wekanimport -f tasks.xlsx -j board.json -s "Sprint 1" -o merged.json
  wekanimport -f tasks.csv -j board.json -s Backlog --pretty > merged.json
  wekanimport -f tasks.xlsx -j board.json -s Backlog --dry-run --format yaml`,
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.setupCommand,
		RunE:              a.runImport,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	flags := rootCmd.Flags()
	flags.StringP("file", "f", "", "spreadsheet with the rows to import (.xlsx or .csv)")
	flags.StringP("json", "j", "", "Wekan board export to merge into")
	flags.StringP("swimlane", "s", "", "swimlane that receives the imported cards")
	flags.StringP("output", "o", "", "write the merged board to this path (default stdout)")
	flags.String("sheet", "", "worksheet to read (default the active sheet)")
	flags.Bool("pretty", false, "indent the merged board")
	flags.Bool("dry-run", false, "merge and report without writing the board")
	flags.String("id-format", "", "identifier format for new entities: meteor, uuid")
	flags.Bool("labels", true, "read label names from the seventh column")
	flags.String("format", "", "summary format: table, json, yaml, markdown (default table on a terminal)")

	persistent := rootCmd.PersistentFlags()
	persistent.String("config", "", "config file (default is $HOME/.wekanimport.yaml)")
	persistent.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	persistent.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	persistent.Bool("no-color", false, "disable colored output")
	persistent.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("wekanimport {{.Version}}\n")

	rootCmd.AddCommand(a.NewVersionCommand())
	rootCmd.AddCommand(a.NewManCommand())

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if path := mustGetString(cmd, "config"); path != "" {
		config, err := LoadConfig(path)
		if err != nil {
			return a.fail(err)
		}
		a.config = config
	}
	a.config.UpdateFromFlags(cmd.Flags())

	if _, err := output.ParseFormat(a.config.Format); err != nil {
		return a.fail(errors.WrapValidation("format", err))
	}

	logger := NewLogger(a.config, a.stderr)
	a.logger = &logger
	logging.SetDefault(logger)

	return nil
}

// runImport performs the import and reports the outcome on stderr.
func (a *App) runImport(cmd *cobra.Command, _ []string) error {
	ctx := logging.WithLogger(cmd.Context(), a.logger)
	ctx = logging.WithSwimlane(ctx, a.config.Swimlane)

	client, err := a.Client()
	if err != nil {
		return a.fail(err)
	}

	result, err := client.Run(ctx, a.config.Request())
	if result != nil && !a.config.Quiet {
		if ferr := a.writeSummary(result); ferr != nil {
			a.logger.Warn().Err(ferr).Msg("Writing import summary")
		}
	}
	if err != nil {
		return a.fail(err)
	}

	a.succeed(result)
	return nil
}

func (a *App) writeSummary(result *importer.Result) error {
	format, _ := output.ParseFormat(a.config.Format)
	format = output.DetectFormat(format, a.stderr)
	return output.FormatResult(a.stderr, format, result, a.config.Output, a.config.DryRun)
}

// fail prints the failure banner and returns err so the process exits 1.
func (a *App) fail(err error) error {
	a.writeAlert(alerts.Failed(err, hints.Strings(hints.Default().GetHints(hints.Context{
		Err:    err,
		File:   a.config.File,
		JSON:   a.config.JSON,
		Output: a.config.Output,
	}))...))
	return err
}

// succeed prints the outcome banner. Row errors turn it into a warning
// without failing the run.
func (a *App) succeed(result *importer.Result) {
	if a.config.DryRun {
		a.writeAlert(alerts.DryRun(a.config.Output))
	}
	a.writeAlert(alerts.Completed(result.Summary(), !result.IsSuccess()))
}

func (a *App) writeAlert(alert *alerts.Alert) {
	w := alerts.NewFormatWriter(a.stderr, output.FormatTable)
	if a.config.NoColor {
		w.WithColor(false)
	}
	if err := w.WriteAlert(alert); err != nil {
		a.logger.Error().Err(err).Msg("Writing status banner")
	}
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
