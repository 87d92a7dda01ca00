package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"visual-scout/internal/frames"
	"visual-scout/internal/similarity"
)

// Config holds the extraction run configuration. Values default from
// environment variables and may be overridden by CLI flags.
type Config struct {
	// OutputDir is the root under which output_frames/ and
	// output_grids/ are created.
	OutputDir string

	// GridDim is the maximum grid dimension N (grids are at most NxN).
	GridDim int

	// Profile names the similarity threshold profile.
	Profile string

	// Threshold is the resolved SSIM cutoff; derived in Validate.
	Threshold float64

	// StaticSampling bypasses the novelty filter entirely.
	StaticSampling bool

	// Interval is the sampling interval in seconds for video and GIF.
	Interval int

	// Workers caps the extraction pool size (0 = derive from CPUs).
	Workers int

	// MetricsAddr exposes Prometheus metrics when non-empty.
	MetricsAddr string

	// IndexPath enables the SQLite grid index when non-empty.
	IndexPath string
}

// Load builds a Config from environment variables with defaults.
func Load() *Config {
	return &Config{
		OutputDir:      getEnv("OUTPUT_DIR", "output"),
		GridDim:        getEnvInt("GRID_SIZE", 3),
		Profile:        getEnv("SIMILARITY_PROFILE", "default"),
		StaticSampling: getEnvBool("STATIC_SAMPLE_RATE", false),
		Interval:       getEnvInt("SAMPLING_INTERVAL", frames.DefaultInterval),
		Workers:        getEnvInt("EXTRACT_WORKERS", 0),
		MetricsAddr:    getEnv("METRICS_ADDR", ""),
		IndexPath:      getEnv("GRID_INDEX_PATH", ""),
	}
}

// Validate checks structural validity and resolves the similarity
// profile. Invalid configuration is fatal to the whole run, since it
// cannot be resolved per-file.
func (c *Config) Validate() error {
	if c.GridDim <= 0 {
		return fmt.Errorf("grid dimension must be positive, got %d", c.GridDim)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("sampling interval must be positive, got %d", c.Interval)
	}
	if c.Workers < 0 {
		return fmt.Errorf("worker count must not be negative, got %d", c.Workers)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("output directory must not be empty")
	}

	threshold, err := similarity.Threshold(c.Profile)
	if err != nil {
		return err
	}
	c.Threshold = threshold
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return fallback
}
