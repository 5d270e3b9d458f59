package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the few knobs worth persisting between runs.
type Config struct {
	BaseBranch string `yaml:"base_branch"`
	Editor     string `yaml:"editor"`
	Review     *bool  `yaml:"review"`
	LogLevel   string `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML (or JSON) config file. A missing file yields the defaults.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// ReviewEnabled reports whether the rewritten todo should be opened in an editor.
func (c Config) ReviewEnabled() bool {
	return c.Review == nil || *c.Review
}

func (c *Config) applyDefaults() {
	if c.BaseBranch == "" {
		c.BaseBranch = "production"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
