package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hilcore/hilc/internal/config"
)

func TestLoadDriverConfigReturnsDefaultsForEmptyPath(t *testing.T) {
	cfg, err := config.LoadDriverConfig("")
	if err != nil {
		t.Fatalf("LoadDriverConfig: %v", err)
	}
	want := config.DefaultDriverConfig()
	if cfg.IterationCap != want.IterationCap || cfg.FailFast != want.FailFast {
		t.Fatalf("expected default config, got %+v", cfg)
	}
}

func TestLoadDriverConfigReturnsDefaultsForMissingFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.LoadDriverConfig(filepath.Join(dir, "missing.toml"))
	if err != nil {
		t.Fatalf("LoadDriverConfig: %v", err)
	}
	if cfg.IterationCap != config.DefaultIterationCap {
		t.Fatalf("expected the default iteration cap, got %d", cfg.IterationCap)
	}
}

func TestLoadDriverConfigParsesTOMLOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".hilc.toml")
	toml := `
search_dirs = ["./lib/**"]
iteration_cap = 10
debug_streams = ["resolver"]
plugin_order = ["spd", "hil"]
`
	if err := os.WriteFile(path, []byte(toml), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := config.LoadDriverConfig(path)
	if err != nil {
		t.Fatalf("LoadDriverConfig: %v", err)
	}
	if cfg.IterationCap != 10 {
		t.Fatalf("expected iteration_cap override, got %d", cfg.IterationCap)
	}
	if len(cfg.SearchDirs) != 1 || cfg.SearchDirs[0] != "./lib/**" {
		t.Fatalf("expected search_dirs override, got %v", cfg.SearchDirs)
	}
	if len(cfg.PluginOrder) != 2 || cfg.PluginOrder[0] != "spd" {
		t.Fatalf("expected plugin_order override, got %v", cfg.PluginOrder)
	}
	// Untouched fields keep their default.
	if !cfg.FailFast {
		t.Fatalf("expected fail_fast to keep its default value of true")
	}
}

func TestLoadDriverConfigParsesYAMLFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".hilc.yaml")
	yaml := "iteration_cap: 25\ndump_dir: ./dumps\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := config.LoadDriverConfig(path)
	if err != nil {
		t.Fatalf("LoadDriverConfig: %v", err)
	}
	if cfg.IterationCap != 25 {
		t.Fatalf("expected iteration_cap override from YAML, got %d", cfg.IterationCap)
	}
	if cfg.DumpDir != "./dumps" {
		t.Fatalf("expected dump_dir override from YAML, got %q", cfg.DumpDir)
	}
}

func TestDefaultConfigTOMLParsesToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".hilc.toml")
	if err := os.WriteFile(path, []byte(config.DefaultConfigTOML), 0o644); err != nil {
		t.Fatalf("writing default config: %v", err)
	}

	cfg, err := config.LoadDriverConfig(path)
	if err != nil {
		t.Fatalf("LoadDriverConfig on the generated starter config: %v", err)
	}
	if cfg.IterationCap != config.DefaultIterationCap {
		t.Fatalf("expected the starter config (all commented out) to parse to defaults, got %+v", cfg)
	}
}
