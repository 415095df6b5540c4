package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if filepath.Base(cfg.Paths.Input) != DefaultInputFile {
		t.Errorf("expected default input %s, got %s", DefaultInputFile, cfg.Paths.Input)
	}
	if filepath.Dir(cfg.Paths.Prepared) != ProgramDir() {
		t.Errorf("expected prepared path next to the binary, got %s", cfg.Paths.Prepared)
	}
	if cfg.IDs.Floor != 500000 {
		t.Errorf("expected floor 500000, got %d", cfg.IDs.Floor)
	}
	if cfg.IDs.Overrides[50] != "238078" {
		t.Errorf("expected override 50 -> 238078, got %q", cfg.IDs.Overrides[50])
	}
	if len(cfg.Columns.Primary) != 5 || len(cfg.Columns.Secondary) != 7 {
		t.Errorf("expected 5 primary and 7 secondary columns, got %d and %d",
			len(cfg.Columns.Primary), len(cfg.Columns.Secondary))
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing input",
			modify:  func(c *Config) { c.Paths.Input = "" },
			wantErr: true,
		},
		{
			name:    "too many primary columns",
			modify:  func(c *Config) { c.Columns.Primary = []string{"a", "b", "c", "d", "e", "f"} },
			wantErr: true,
		},
		{
			name:    "no primary columns",
			modify:  func(c *Config) { c.Columns.Primary = nil },
			wantErr: true,
		},
		{
			name:    "too many secondary columns",
			modify:  func(c *Config) { c.Columns.Secondary = make([]string, 8) },
			wantErr: true,
		},
		{
			name:    "negative floor",
			modify:  func(c *Config) { c.IDs.Floor = -1 },
			wantErr: true,
		},
		{
			name:    "unknown seed",
			modify:  func(c *Config) { c.IDs.Seed = "random" },
			wantErr: true,
		},
		{
			name:    "max seed",
			modify:  func(c *Config) { c.IDs.Seed = SeedMax },
			wantErr: false,
		},
		{
			name:    "empty override identifier",
			modify:  func(c *Config) { c.IDs.Overrides[3] = " " },
			wantErr: true,
		},
		{
			name:    "duplicate override identifier",
			modify:  func(c *Config) { c.IDs.Overrides[3] = "238078" },
			wantErr: true,
		},
		{
			name:    "unknown format",
			modify:  func(c *Config) { c.Output.Format = "rdfxml" },
			wantErr: true,
		},
		{
			name:    "format is case insensitive",
			modify:  func(c *Config) { c.Output.Format = "NTriples" },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
paths:
  input: "/data/hte.csv"
columns:
  sheet: "Sheet2"
  label: "heading"
ids:
  floor: 900000
  overrides:
    12: "4711"
scheme:
  language: "de"
output:
  format: "ntriples"
metrics:
  textfile: "/tmp/trm.prom"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Paths.Input != "/data/hte.csv" {
		t.Errorf("expected input /data/hte.csv, got %s", cfg.Paths.Input)
	}
	if cfg.Columns.Sheet != "Sheet2" {
		t.Errorf("expected sheet Sheet2, got %s", cfg.Columns.Sheet)
	}
	if cfg.Columns.Label != "heading" {
		t.Errorf("expected label column heading, got %s", cfg.Columns.Label)
	}
	// Unset columns keep their defaults
	if cfg.Columns.CategoryID != "catid" {
		t.Errorf("expected category id column catid, got %s", cfg.Columns.CategoryID)
	}
	if cfg.IDs.Floor != 900000 {
		t.Errorf("expected floor 900000, got %d", cfg.IDs.Floor)
	}
	if cfg.IDs.Overrides[12] != "4711" {
		t.Errorf("expected override 12 -> 4711, got %q", cfg.IDs.Overrides[12])
	}
	if len(cfg.IDs.Overrides) != 1 {
		t.Errorf("expected override table to be replaced, got %v", cfg.IDs.Overrides)
	}
	if cfg.Scheme.Language != "de" {
		t.Errorf("expected language de, got %s", cfg.Scheme.Language)
	}
	if cfg.Output.Format != "ntriples" {
		t.Errorf("expected format ntriples, got %s", cfg.Output.Format)
	}
	if cfg.Metrics.Textfile != "/tmp/trm.prom" {
		t.Errorf("expected metrics textfile /tmp/trm.prom, got %s", cfg.Metrics.Textfile)
	}
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("ids: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadFromFile(configPath); err == nil {
		t.Error("expected parse error")
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		Paths: PathsConfig{
			Prepared: "/override/prepared.csv",
		},
		IDs: IDsConfig{
			Seed:      SeedMax,
			Overrides: map[int]string{1: "1"},
		},
	}

	base.Merge(override)

	if base.Paths.Prepared != "/override/prepared.csv" {
		t.Errorf("expected prepared /override/prepared.csv, got %s", base.Paths.Prepared)
	}
	// Input should remain from base since override didn't set it
	if filepath.Base(base.Paths.Input) != DefaultInputFile {
		t.Errorf("expected input to remain default, got %s", base.Paths.Input)
	}
	if base.IDs.Seed != SeedMax {
		t.Errorf("expected seed max, got %s", base.IDs.Seed)
	}
	if base.IDs.Floor != 500000 {
		t.Errorf("expected floor to remain 500000, got %d", base.IDs.Floor)
	}
	if len(base.IDs.Overrides) != 1 || base.IDs.Overrides[1] != "1" {
		t.Errorf("expected override table to be replaced, got %v", base.IDs.Overrides)
	}

	base.Merge(nil)
	if base.IDs.Seed != SeedMax {
		t.Error("merging nil should be a no-op")
	}
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := DefaultConfig()
	cfg.Scheme.AltLabel = "SAVED"

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}

	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Scheme.AltLabel != "SAVED" {
		t.Errorf("expected alt label SAVED, got %s", loaded.Scheme.AltLabel)
	}
	if loaded.IDs.Overrides[1986] != "238071" {
		t.Errorf("expected override table to round-trip, got %v", loaded.IDs.Overrides)
	}
}

func TestLoadFromFileExpandsEnv(t *testing.T) {
	t.Setenv("TRM_DATA", "/srv/hte")

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `
paths:
  input: "${TRM_DATA}/input.xlsx"
  prepared: "${TRM_OUT:-/tmp}/prepared.xlsx"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Paths.Input != "/srv/hte/input.xlsx" {
		t.Errorf("expected expanded input path, got %s", cfg.Paths.Input)
	}
	if cfg.Paths.Prepared != "/tmp/prepared.xlsx" {
		t.Errorf("expected default-expanded prepared path, got %s", cfg.Paths.Prepared)
	}
}
