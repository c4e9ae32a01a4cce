package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Bacteria.Initial != 10 {
		t.Errorf("bacteria.initial = %d, want 10", cfg.Bacteria.Initial)
	}
	if cfg.Reproduction.MaxPopulation != 110 {
		t.Errorf("reproduction.max_population = %d, want 110", cfg.Reproduction.MaxPopulation)
	}
	if cfg.Injection.AttachRange != 92 {
		t.Errorf("injection.attach_range = %v, want 92", cfg.Injection.AttachRange)
	}

	wantBoundary := cfg.Dish.Radius * 0.93
	if cfg.Derived.BoundaryRadius != wantBoundary {
		t.Errorf("Derived.BoundaryRadius = %v, want %v", cfg.Derived.BoundaryRadius, wantBoundary)
	}
	if cfg.Derived.SpawnRadius >= cfg.Derived.BoundaryRadius {
		t.Errorf("spawn radius %v should be inside boundary %v", cfg.Derived.SpawnRadius, cfg.Derived.BoundaryRadius)
	}
	if cfg.Derived.CenterX != float64(cfg.Screen.Width)/2 {
		t.Errorf("Derived.CenterX = %v, want %v", cfg.Derived.CenterX, float64(cfg.Screen.Width)/2)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("session:\n  needed_to_win: 3\nhelpers:\n  max: 4\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Session.NeededToWin != 3 {
		t.Errorf("needed_to_win = %d, want 3", cfg.Session.NeededToWin)
	}
	if cfg.Helpers.Max != 4 {
		t.Errorf("helpers.max = %d, want 4", cfg.Helpers.Max)
	}
	// Keys absent from the overlay keep their defaults
	if cfg.Session.LoseThreshold != 90 {
		t.Errorf("lose_threshold = %d, want default 90", cfg.Session.LoseThreshold)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero radius", func(c *Config) { c.Dish.Radius = 0 }},
		{"spawn outside boundary", func(c *Config) { c.Dish.SpawnFactor = 0.95 }},
		{"striker chance above one", func(c *Config) { c.Helpers.StrikerChance = 1.5 }},
		{"lose above hard cap", func(c *Config) { c.Session.LoseThreshold = 200 }},
		{"zero period", func(c *Config) { c.Reproduction.Period = 0 }},
		{"zero grid cell", func(c *Config) { c.Helpers.GridCellSize = 0 }},
		{"zero time ramp", func(c *Config) { c.Reproduction.TimeRampSeconds = 0 }},
		{"zero pop ramp", func(c *Config) { c.Reproduction.PopRampCount = 0 }},
		{"zero max population", func(c *Config) { c.Reproduction.MaxPopulation = 0 }},
		{"zero dt", func(c *Config) { c.Physics.DT = 0 }},
		{"zero stats window", func(c *Config) { c.Telemetry.StatsWindow = 0 }},
		{"offsets reversed", func(c *Config) { c.Reproduction.OffsetMax = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Session.NeededToWin = 7

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Session.NeededToWin != 7 {
		t.Errorf("needed_to_win = %d, want 7", loaded.Session.NeededToWin)
	}
}
