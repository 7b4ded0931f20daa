package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the cle configuration.
type Config struct {
	LogLevel string        `yaml:"log_level"` // debug, info, warn, error
	History  HistoryConfig `yaml:"history"`
	Search   SearchConfig  `yaml:"search"`
	Output   OutputConfig  `yaml:"output"`
}

// HistoryConfig selects and tunes the history store.
type HistoryConfig struct {
	Backend  string `yaml:"backend"`  // file or sqlite
	Path     string `yaml:"path"`     // overrides the default location
	Fallback bool   `yaml:"fallback"` // cd falls back to history on no match
}

// SearchConfig tunes recursive descent.
type SearchConfig struct {
	SkipHidden       bool `yaml:"skip_hidden"`
	RespectGitignore bool `yaml:"respect_gitignore"`
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	Separator string `yaml:"separator"` // joins results of several queries
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "warn",
		History: HistoryConfig{
			Backend:  "file",
			Fallback: true,
		},
		Output: OutputConfig{
			Separator: "\n",
		},
	}
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	return LoadFromFile(DefaultPaths().ConfigFile())
}

// LoadFromFile loads configuration from the specified file.
// A missing file yields the default configuration.
// Environment variable overrides are applied after file loading.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves the configuration to the specified file.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// HistoryPath returns the configured history location for the file backend.
func (c *Config) HistoryPath(p *Paths) string {
	if c.History.Path != "" {
		return c.History.Path
	}
	return p.HistoryFile()
}

// ListKeys returns the user-facing configuration keys.
func ListKeys() []string {
	return []string{
		"log_level",
		"history.backend",
		"history.path",
		"history.fallback",
		"search.skip_hidden",
		"search.respect_gitignore",
		"output.separator",
	}
}

// Get retrieves a configuration value by dot-separated key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "log_level":
		return c.LogLevel, nil
	case "history.backend":
		return c.History.Backend, nil
	case "history.path":
		return c.History.Path, nil
	case "history.fallback":
		return strconv.FormatBool(c.History.Fallback), nil
	case "search.skip_hidden":
		return strconv.FormatBool(c.Search.SkipHidden), nil
	case "search.respect_gitignore":
		return strconv.FormatBool(c.Search.RespectGitignore), nil
	case "output.separator":
		return c.Output.Separator, nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

// Set sets a configuration value by dot-separated key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "log_level":
		c.LogLevel = value
	case "history.backend":
		c.History.Backend = value
	case "history.path":
		c.History.Path = value
	case "history.fallback":
		return setBool(&c.History.Fallback, key, value)
	case "search.skip_hidden":
		return setBool(&c.Search.SkipHidden, key, value)
	case "search.respect_gitignore":
		return setBool(&c.Search.RespectGitignore, key, value)
	case "output.separator":
		c.Output.Separator = value
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func setBool(dst *bool, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%s must be a boolean (got: %s)", key, value)
	}
	*dst = b
	return nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if !isValidLogLevel(c.LogLevel) {
		return fmt.Errorf("log_level must be debug, info, warn, or error (got: %s)", c.LogLevel)
	}
	switch c.History.Backend {
	case "file", "sqlite":
	default:
		return fmt.Errorf("history.backend must be file or sqlite (got: %s)", c.History.Backend)
	}
	if strings.ContainsRune(c.History.Path, '\n') {
		return errors.New("history.path must not contain newlines")
	}
	return nil
}

// ApplyEnvOverrides applies CLE_* environment variables on top of the file.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("CLE_LOG_LEVEL"); v != "" {
		if isValidLogLevel(v) {
			c.LogLevel = v
		}
	}
	if v := os.Getenv("CLE_HISTORY_BACKEND"); v != "" {
		c.History.Backend = v
	}
	if v := os.Getenv("CLE_HISTORY_PATH"); v != "" {
		c.History.Path = v
	}
}

func isValidLogLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
