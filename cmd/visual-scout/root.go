package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "visual-scout",
		Short:         "Sample, deduplicate, and tile media frames into grid images",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newExtractCommand())
	rootCmd.AddCommand(newEstimateCostCommand())
	rootCmd.AddCommand(newLabelCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
