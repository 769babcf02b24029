package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newHistoryCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List past results, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			env, err := setup(ctx, flags, os.Stderr)
			if err != nil {
				return err
			}
			defer env.close(ctx)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, row := range env.svc.Rows(ctx) {
				if row.Empty {
					fmt.Fprintln(tw, row.Headline)
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", row.Headline, row.Summary, row.Time)
			}
			return tw.Flush()
		},
	}
}
