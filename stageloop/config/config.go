// Package config loads the player configuration from a YAML file.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultConfig []byte

// SimulationApp selects how the host application is launched.
type SimulationApp struct {
	// LaunchConfig is passed through to the host untouched.
	LaunchConfig map[string]any `yaml:"launch_config"`

	// Experience names the host experience profile.
	Experience string `yaml:"experience"`
}

// Config is the top-level player configuration.
type Config struct {
	SimulationApp SimulationApp `yaml:"simulation_app"`

	// LastFrameIndex is the initial terminal frame of the animation.
	LastFrameIndex int `yaml:"last_frame_index"`

	// SceneName is the scene filename, appended to the scene directory.
	SceneName string `yaml:"scene_name"`

	// USDDirectory, when set, triggers a scene load at startup.
	USDDirectory string `yaml:"usd_directory"`

	// LayerPaths are override layers for the initial load, in priority
	// order, highest first.
	LayerPaths []string `yaml:"layer_paths"`
}

// Load reads a YAML config file. A path without a YAML extension degrades to
// the embedded default with a warning rather than failing.
func Load(path string) (Config, error) {
	if ext := filepath.Ext(path); ext != ".yaml" && ext != ".yml" {
		slog.Warn("Config file is not yaml, using default config", "path", path)
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Default returns the embedded default configuration.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultConfig, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded default is invalid: %v", err))
	}
	return cfg
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if c.LastFrameIndex < 0 {
		return fmt.Errorf("config: last_frame_index must be non-negative, got %d", c.LastFrameIndex)
	}

	if c.SceneName == "" {
		return fmt.Errorf("config: scene_name is required")
	}

	return nil
}
