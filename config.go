package scenedit

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the editor configuration, loaded from a TOML file.
type Config struct {
	History HistoryConfig `toml:"history"`
	Logging LoggingConfig `toml:"logging"`
	Scene   SceneConfig   `toml:"scene"`
}

// HistoryConfig bounds the undo stack.
type HistoryConfig struct {
	MaxDepth int `toml:"max_depth"`
}

// LoggingConfig selects log verbosity and encoding.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// SceneConfig holds scene file settings.
type SceneConfig struct {
	AutosavePath string `toml:"autosave_path"`
}

// DefaultConfig returns the built-in defaults used when no config file is
// present.
func DefaultConfig() *Config {
	return &Config{
		History: HistoryConfig{MaxDepth: DefaultHistoryDepth},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// LoadConfig reads a TOML config file over the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
