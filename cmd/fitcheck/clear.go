package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newClearCmd(flags *rootFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			confirmed := yes
			if !confirmed {
				fmt.Fprint(cmd.OutOrStdout(), "Clear all history? [y/N]: ")
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				switch strings.ToLower(strings.TrimSpace(answer)) {
				case "y", "yes":
					confirmed = true
				}
			}
			if !confirmed {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}

			env, err := setup(ctx, flags, os.Stderr)
			if err != nil {
				return err
			}
			defer env.close(ctx)

			if err := env.svc.Clear(ctx, confirmed); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
