package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/flowdeck/internal/app"
)

func newFlowsCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "flows",
		Short:   "Work with flows without the dashboard",
		Aliases: []string{"flow"},
	}
	cmd.AddCommand(newFlowsListCmd(flags), newFlowsRenameCmd(flags), newFlowsRunCmd(flags))
	return cmd
}

// openSession opens a session for a one-shot command, logging to stderr
// unless a log file was given.
func openSession(cmd *cobra.Command, flags *rootFlags) (*app.Session, error) {
	opts := flags.options()
	if opts.LogFile == "" {
		opts.LogFile = "-"
	}
	sess, err := app.Open(cmd.Context(), opts)
	if err != nil {
		return nil, err
	}
	if sess.Config.Environment == "" {
		sess.Close()
		return nil, fmt.Errorf("environment required")
	}
	return sess, nil
}

func newFlowsListCmd(flags *rootFlags) *cobra.Command {
	var (
		search  string
		filters []string
		sortBy  string
		page    int
		output  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the flows of an environment",
		Example: `  flowdeck flows list --env Default-1234 --filter state=Started --sort Modified:desc
  flowdeck flows list --env Default-1234 --search invoice --output yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer sess.Close()

			listing, err := app.ListFlows(cmd.Context(), sess.Client, app.ListOptions{
				Environment: sess.Config.Environment,
				Search:      search,
				Filters:     filters,
				Sort:        sortBy,
				Page:        page,
				PageSize:    sess.Config.PageSize,
			})
			if err != nil {
				return err
			}
			if err := app.WriteListing(cmd.OutOrStdout(), listing, output); err != nil {
				return fmt.Errorf("write listing: %w", err)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&search, "search", "", "case-insensitive text to match in any column")
	f.StringArrayVar(&filters, "filter", nil, `column=value, repeatable; "(empty)" matches empty values`)
	f.StringVar(&sortBy, "sort", "", "column to sort by, optionally column:desc")
	f.IntVar(&page, "page", 1, "page to print")
	f.StringVarP(&output, "output", "o", app.FormatTable, "table, yaml or json")
	return cmd
}

func newFlowsRenameCmd(flags *rootFlags) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:     "rename FLOW DISPLAY-NAME",
		Short:   "Change the display name of a flow",
		Example: `  flowdeck flows rename --env Default-1234 8c1f0d2e "Invoice sync"`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer sess.Close()

			rec, err := app.RenameFlow(cmd.Context(), sess.Client, sess.Config.Environment, args[0], args[1])
			if err != nil {
				return err
			}
			return app.WriteRecord(cmd.OutOrStdout(), rec, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", app.FormatYAML, "yaml or json")
	return cmd
}

func newFlowsRunCmd(flags *rootFlags) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:     "run FLOW RUN",
		Short:   "Print one run of a flow",
		Example: `  flowdeck flows run --env Default-1234 8c1f0d2e 08585 -o json`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer sess.Close()

			rec, err := app.GetRun(cmd.Context(), sess.Client, sess.Config.Environment, args[0], args[1])
			if err != nil {
				return err
			}
			return app.WriteRecord(cmd.OutOrStdout(), rec, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", app.FormatYAML, "yaml or json")
	return cmd
}
