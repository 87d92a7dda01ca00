package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"visual-scout/internal/config"
	"visual-scout/internal/extractor"
	"visual-scout/internal/logging"
	"visual-scout/internal/metrics"
	"visual-scout/internal/store"
)

func newExtractCommand() *cobra.Command {
	cfg := config.Load()

	cmd := &cobra.Command{
		Use:   "extract <input-dir>",
		Short: "Extract representative frames and composite grids from a media directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			paths, err := extractor.ListMediaFiles(args[0])
			if err != nil {
				return err
			}

			var st *store.Store
			if cfg.IndexPath != "" {
				ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
				defer cancel()
				st, err = store.New(ctx, cfg.IndexPath)
				if err != nil {
					return fmt.Errorf("open grid index: %w", err)
				}
				defer st.Close()
			}

			if cfg.MetricsAddr != "" {
				go metrics.Serve(cfg.MetricsAddr)
			}

			report := extractor.New(cfg, st).Run(paths)
			for _, outcome := range report.Outcomes {
				if outcome.Err != nil {
					logging.Warn("%s: %v", outcome.Path, outcome.Err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"Processed %d files in %s: %d succeeded, %d failed\n",
				len(report.Outcomes), report.Duration.Round(time.Millisecond),
				report.Succeeded(), report.Failed())

			if report.Succeeded() == 0 {
				return fmt.Errorf("no files processed successfully")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&cfg.OutputDir, "output", "o", cfg.OutputDir, "Root directory for output_frames/ and output_grids/")
	cmd.Flags().IntVar(&cfg.GridDim, "grid-size", cfg.GridDim, "Maximum grid dimension N (grids are at most NxN)")
	cmd.Flags().StringVar(&cfg.Profile, "similarity", cfg.Profile, "Similarity profile: strict, default, or loose")
	cmd.Flags().BoolVar(&cfg.StaticSampling, "static-sample-rate", cfg.StaticSampling, "Keep every sampled frame, bypassing the novelty filter")
	cmd.Flags().IntVar(&cfg.Interval, "interval", cfg.Interval, "Sampling interval in seconds")
	cmd.Flags().IntVar(&cfg.Workers, "workers", cfg.Workers, "Extraction pool size (0 derives from CPU count)")
	cmd.Flags().StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Listen address for Prometheus metrics (disabled when empty)")
	cmd.Flags().StringVar(&cfg.IndexPath, "index", cfg.IndexPath, "SQLite grid index path (disabled when empty)")

	return cmd
}
