package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/fitcheck/internal/domain/bmi"
	"github.com/okian/fitcheck/internal/domain/history"
)

func newCalcCmd(flags *rootFlags) *cobra.Command {
	var unit, weight, height string

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute a BMI and add it to the history",
		Example: `  fitcheck calc --weight 70 --height 175
  fitcheck calc --unit imperial --weight 150 --height 70`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			u, err := bmi.ParseUnit(unit)
			if err != nil {
				return err
			}

			env, err := setup(ctx, flags, os.Stderr)
			if err != nil {
				return err
			}
			defer env.close(ctx)

			out, err := env.svc.Submit(ctx, u, weight, height)
			if err != nil {
				return err
			}
			labels := env.svc.Units(u)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "BMI: %s (%s) · %s%s · %s%s\n",
				history.FormatNumber(out.Result.BMI), out.Result.Category,
				history.FormatNumber(out.Result.Weight), labels.Weight,
				history.FormatNumber(out.Result.Height), labels.Height)
			return err
		},
	}
	cmd.Flags().StringVarP(&unit, "unit", "u", "metric", "Unit system: metric (kg/cm) or imperial (lb/in)")
	cmd.Flags().StringVarP(&weight, "weight", "w", "", "Weight in kg or lb")
	cmd.Flags().StringVarP(&height, "height", "H", "", "Height in cm or in")
	return cmd
}
