package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/flintsteel/flintsteel/internal/filter"
	"github.com/flintsteel/flintsteel/internal/index"
	"github.com/flintsteel/flintsteel/internal/mock"
	"github.com/flintsteel/flintsteel/internal/runner"
	"github.com/flintsteel/flintsteel/internal/selector"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Name     string
	Patterns []string
	Tags     []string
	Index    string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <tests-dir>",
		Short: "Run test specifications",
		Long: `Run test specifications from a directory against the in-memory
backend.

Selection flags combine with AND; repeatable flags match if any value
matches. With no selection flags every discovered spec runs.

Exit codes:
  0 - all selected tests passed
  1 - one or more tests failed
  2 - command error (invalid paths, etc.)

Examples:
  flintsteel run ./tests
  flintsteel run ./tests --name copper_waxing
  flintsteel run ./tests --pattern "copper_*" --tag redstone
  flintsteel run ./tests --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "run a single test by exact name")
	cmd.Flags().StringArrayVar(&opts.Patterns, "pattern", nil, "run tests matching a glob name pattern (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Tags, "tag", nil, "run tests carrying a tag (repeatable)")
	cmd.Flags().StringVar(&opts.Index, "index", "", "path to a test index database (optional)")

	return cmd
}

func runTests(opts *RunOptions, testsDir string, cmd *cobra.Command) error {
	sel, err := newSelector(testsDir, opts.Index)
	if err != nil {
		return err
	}

	f := buildFilter(opts)
	specs, err := sel.LoadTests(f)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load tests", err)
	}

	if len(specs) == 0 {
		if opts.Format == "json" {
			return writeJSON(cmd.OutOrStdout(), runner.Summarize(nil))
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No tests selected.")
		return nil
	}

	adapter := mock.NewAdapter()
	slog.Info("running tests",
		"count", len(specs),
		"backend", adapter.Info().Version,
	)

	r := runner.New(adapter)
	sum := r.RunTests(specs)

	if opts.Format == "json" {
		if err := writeJSON(cmd.OutOrStdout(), sum); err != nil {
			return err
		}
	} else {
		RenderSummary(cmd.OutOrStdout(), sum)
	}

	if !sum.AllPassed() {
		return NewExitError(ExitFailure,
			fmt.Sprintf("%d of %d tests failed", sum.Failed, sum.Total))
	}
	return nil
}

// newSelector builds a selector for a test directory, attaching the index
// when one is configured and present.
func newSelector(testsDir, indexPath string) (*selector.Selector, error) {
	var selOpts []selector.Option
	if indexPath != "" {
		if _, err := os.Stat(indexPath); err != nil {
			return nil, WrapExitError(ExitCommandError, "test index not found", err)
		}
		ix, err := index.Open(indexPath)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to open test index", err)
		}
		selOpts = append(selOpts, selector.WithIndex(ix))
	}

	sel, err := selector.New(testsDir, selOpts...)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid tests directory", err)
	}
	return sel, nil
}

func buildFilter(opts *RunOptions) filter.Filter {
	f := filter.All()
	if opts.Name != "" {
		f = f.WithExactName(opts.Name)
	}
	if len(opts.Patterns) > 0 {
		f = f.WithPatterns(opts.Patterns...)
	}
	if len(opts.Tags) > 0 {
		f = f.WithTags(opts.Tags...)
	}
	return f
}
