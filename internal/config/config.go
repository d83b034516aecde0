// Package config loads the pass driver's configuration (SPEC_FULL.md
// §4.10), layered the way the teacher's internal/config package layers
// pyscn's Config: a TOML file as primary format, a legacy YAML file
// read through viper for its key-path Unmarshal/SetDefault convenience,
// and hard-coded defaults as the final fallback.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// DriverConfig controls internal/driver and internal/module (SPEC_FULL.md
// §4.10).
type DriverConfig struct {
	SearchDirs   []string `mapstructure:"search_dirs" toml:"search_dirs" yaml:"search_dirs"`
	IterationCap int      `mapstructure:"iteration_cap" toml:"iteration_cap" yaml:"iteration_cap"`
	FailFast     bool     `mapstructure:"fail_fast" toml:"fail_fast" yaml:"fail_fast"`
	DebugStreams []string `mapstructure:"debug_streams" toml:"debug_streams" yaml:"debug_streams"`
	DumpDir      string   `mapstructure:"dump_dir" toml:"dump_dir" yaml:"dump_dir"`
	PluginOrder  []string `mapstructure:"plugin_order" toml:"plugin_order" yaml:"plugin_order"`
}

// DefaultIterationCap mirrors the §4.8 default bound on resolve rounds.
const DefaultIterationCap = 50

// DefaultDriverConfig returns the hard-coded fallback configuration.
func DefaultDriverConfig() *DriverConfig {
	return &DriverConfig{
		SearchDirs:   nil,
		IterationCap: DefaultIterationCap,
		FailFast:     true,
		DebugStreams: nil,
		DumpDir:      "",
		PluginOrder:  []string{"hil", "spd"},
	}
}

// LoadDriverConfig loads configuration from path, trying TOML first (the
// primary format, ".hilc.toml"), falling back to YAML through viper for
// legacy ".hilc.yaml" projects, and finally the hard-coded defaults if
// path is empty or doesn't exist. Values present in the file override
// the corresponding default field; zero-value fields in the file are
// left at their default.
func LoadDriverConfig(path string) (*DriverConfig, error) {
	cfg := DefaultDriverConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading driver config %q: %w", path, err)
	}

	if isTOML(path) {
		var fileCfg DriverConfig
		if err := toml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing TOML driver config %q: %w", path, err)
		}
		merge(cfg, &fileCfg)
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("search_dirs", cfg.SearchDirs)
	v.SetDefault("iteration_cap", cfg.IterationCap)
	v.SetDefault("fail_fast", cfg.FailFast)
	v.SetDefault("debug_streams", cfg.DebugStreams)
	v.SetDefault("dump_dir", cfg.DumpDir)
	v.SetDefault("plugin_order", cfg.PluginOrder)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("parsing YAML driver config %q: %w", path, err)
	}
	var fileCfg DriverConfig
	if err := v.Unmarshal(&fileCfg); err != nil {
		return nil, fmt.Errorf("unmarshaling YAML driver config %q: %w", path, err)
	}
	merge(cfg, &fileCfg)
	return cfg, nil
}

func isTOML(path string) bool {
	return len(path) >= 5 && path[len(path)-5:] == ".toml"
}

// merge overlays any non-zero field of override onto defaults, the same
// "only override non-zero values" discipline the teacher's
// pyproject_loader.go mergeConfigs uses.
func merge(defaults, override *DriverConfig) {
	if len(override.SearchDirs) > 0 {
		defaults.SearchDirs = override.SearchDirs
	}
	if override.IterationCap > 0 {
		defaults.IterationCap = override.IterationCap
	}
	defaults.FailFast = override.FailFast || defaults.FailFast
	if len(override.DebugStreams) > 0 {
		defaults.DebugStreams = override.DebugStreams
	}
	if override.DumpDir != "" {
		defaults.DumpDir = override.DumpDir
	}
	if len(override.PluginOrder) > 0 {
		defaults.PluginOrder = override.PluginOrder
	}
}
