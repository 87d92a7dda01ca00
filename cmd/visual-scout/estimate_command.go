package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"visual-scout/internal/cost"
	"visual-scout/internal/frames"
)

func newEstimateCostCommand() *cobra.Command {
	var (
		model    string
		interval int
		gridDim  int
	)

	cmd := &cobra.Command{
		Use:   "estimate-cost <input-dir>",
		Short: "Estimate the labeling API cost for a media directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			estimator, err := cost.NewEstimator(interval, gridDim, model)
			if err != nil {
				return err
			}
			estimate, err := estimator.EstimateDir(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), estimate)
			return nil
		},
	}

	cmd.Flags().StringVar(&model, "model", "gpt-4o-mini", "Labeling model to price")
	cmd.Flags().IntVar(&interval, "interval", frames.DefaultInterval, "Sampling interval in seconds")
	cmd.Flags().IntVar(&gridDim, "grid-size", 3, "Maximum grid dimension N")

	return cmd
}
