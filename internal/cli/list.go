package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Tags  bool
	Index string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list <tests-dir>",
		Short: "List discovered tests",
		Long: `List the names of every test specification found under a
directory, in collated order. With --tags the distinct tags are
listed instead.

Examples:
  flintsteel list ./tests
  flintsteel list ./tests --tags
  flintsteel list ./tests --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Tags, "tags", false, "list distinct tags instead of test names")
	cmd.Flags().StringVar(&opts.Index, "index", "", "path to a test index database (optional)")

	return cmd
}

func listTests(opts *ListOptions, testsDir string, cmd *cobra.Command) error {
	sel, err := newSelector(testsDir, opts.Index)
	if err != nil {
		return err
	}

	var (
		items []string
		key   string
	)
	if opts.Tags {
		items, err = sel.ListTags()
		key = "tags"
	} else {
		items, err = sel.ListNames()
		key = "tests"
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list tests", err)
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), map[string][]string{key: items})
	}
	for _, item := range items {
		fmt.Fprintln(cmd.OutOrStdout(), item)
	}
	return nil
}
