package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"visual-scout/internal/labeler"
)

func newLabelCommand() *cobra.Command {
	var (
		model     string
		baseURL   string
		outputDir string
		timeout   int
	)

	cmd := &cobra.Command{
		Use:   "label <grids-dir>",
		Short: "Label grid images through a vision model and write JSON results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiKey := os.Getenv("OPENAI_API_KEY")
			if apiKey == "" {
				return fmt.Errorf("OPENAI_API_KEY is not set")
			}
			client := labeler.NewClient(labeler.Config{
				APIKey:         apiKey,
				Model:          model,
				BaseURL:        baseURL,
				TimeoutSeconds: timeout,
			})
			return client.LabelDirectory(cmd.Context(), args[0], outputDir)
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "Vision model name (defaults to gpt-4o-mini)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Chat completions endpoint (defaults to the OpenAI API)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "output_visual_content", "Directory for label JSON files")
	cmd.Flags().IntVar(&timeout, "timeout", 0, "Per-request timeout in seconds (0 uses the default)")

	return cmd
}
