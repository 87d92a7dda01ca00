package config

import (
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OUTPUT_DIR", "GRID_SIZE", "SIMILARITY_PROFILE",
		"STATIC_SAMPLE_RATE", "SAMPLING_INTERVAL", "EXTRACT_WORKERS",
		"METRICS_ADDR", "GRID_INDEX_PATH",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	c := Load()
	if c.OutputDir != "output" {
		t.Errorf("OutputDir = %q, want output", c.OutputDir)
	}
	if c.GridDim != 3 {
		t.Errorf("GridDim = %d, want 3", c.GridDim)
	}
	if c.Profile != "default" {
		t.Errorf("Profile = %q, want default", c.Profile)
	}
	if c.Interval != 2 {
		t.Errorf("Interval = %d, want 2", c.Interval)
	}
	if c.StaticSampling {
		t.Error("StaticSampling should default to false")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GRID_SIZE", "4")
	t.Setenv("SIMILARITY_PROFILE", "strict")
	t.Setenv("STATIC_SAMPLE_RATE", "true")

	c := Load()
	if c.GridDim != 4 || c.Profile != "strict" || !c.StaticSampling {
		t.Errorf("Load() = %+v", c)
	}
}

func TestValidateResolvesThreshold(t *testing.T) {
	c := &Config{OutputDir: "out", GridDim: 3, Profile: "loose", Interval: 2}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if c.Threshold != 0.80 {
		t.Errorf("Threshold = %v, want 0.80", c.Threshold)
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"zero grid", Config{OutputDir: "o", GridDim: 0, Profile: "default", Interval: 2}, "grid dimension"},
		{"zero interval", Config{OutputDir: "o", GridDim: 3, Profile: "default", Interval: 0}, "sampling interval"},
		{"negative workers", Config{OutputDir: "o", GridDim: 3, Profile: "default", Interval: 2, Workers: -1}, "worker count"},
		{"empty output", Config{OutputDir: " ", GridDim: 3, Profile: "default", Interval: 2}, "output directory"},
		{"unknown profile", Config{OutputDir: "o", GridDim: 3, Profile: "fuzzy", Interval: 2}, "similarity profile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if err == nil {
				t.Fatal("Validate should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
