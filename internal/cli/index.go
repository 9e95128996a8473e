package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/flintsteel/flintsteel/internal/index"
	"github.com/flintsteel/flintsteel/internal/selector"
)

// IndexOptions holds flags for the index command.
type IndexOptions struct {
	*RootOptions
	DB string
}

// NewIndexCommand creates the index command.
func NewIndexCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &IndexOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "index <tests-dir>",
		Short: "Rebuild the test index database",
		Long: `Scan a directory for test specifications and rebuild the index
database used to narrow tag-based selection without parsing every
file.

Examples:
  flintsteel index ./tests
  flintsteel index ./tests --db .flintsteel.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rebuildIndex(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "flintsteel.db", "path to the index database to write")

	return cmd
}

func rebuildIndex(opts *IndexOptions, testsDir string, cmd *cobra.Command) error {
	sel, err := selector.New(testsDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid tests directory", err)
	}

	entries, err := sel.IndexEntries()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to scan tests", err)
	}

	ix, err := index.Open(opts.DB)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open index database", err)
	}
	defer ix.Close()

	if err := ix.Rebuild(entries); err != nil {
		return WrapExitError(ExitCommandError, "failed to rebuild index", err)
	}
	slog.Debug("index rebuilt", "db", opts.DB, "tests", len(entries))

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), map[string]any{
			"db":    opts.DB,
			"tests": len(entries),
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d tests into %s\n", len(entries), opts.DB)
	return nil
}
