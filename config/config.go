// Package config handles configuration loading for the questgraph CLI.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds CLI-level defaults. The library packages (questdb,
// importance) take all their parameters as explicit arguments; Config only
// exists to give the CLI persistent defaults a user can override per
// invocation or per project.
type Config struct {
	Root string `yaml:"root"`

	Importance struct {
		Alpha     float64 `yaml:"alpha"`
		UseLog    bool    `yaml:"use_log"`
		Normalize bool    `yaml:"normalize"`
	} `yaml:"importance"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	c := &Config{Root: "DefaultQuests"}
	c.Importance.Alpha = 0.5
	c.Importance.UseLog = true
	c.Importance.Normalize = true
	return c
}

// Load reads configuration from path. If the file doesn't exist, returns
// default configuration.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithOverrides loads Config the same way Load does, but seeds it from
// a flat override map (as produced by an internal/config.Store, e.g. from
// env vars or a persisted user-level "questgraph config set") before
// reading path. The project config file still wins over these overrides,
// since it unmarshals on top of them.
func LoadWithOverrides(path string, overrides map[string]string) (*Config, error) {
	cfg := Default()
	applyOverrides(cfg, overrides)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyOverrides(cfg *Config, overrides map[string]string) {
	if v, ok := overrides["root"]; ok && v != "" {
		cfg.Root = v
	}
	if v, ok := overrides["importance.alpha"]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Importance.Alpha = f
		}
	}
	if v, ok := overrides["importance.use_log"]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Importance.UseLog = b
		}
	}
	if v, ok := overrides["importance.normalize"]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Importance.Normalize = b
		}
	}
}

// Write serializes cfg as YAML to path, creating parent directories as
// needed.
func Write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
