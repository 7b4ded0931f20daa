// Package config provides configuration management for cle.
package config

import (
	"os"
	"path/filepath"
)

// Paths holds the locations cle reads and writes.
type Paths struct {
	// ConfigDir is the directory for configuration files (~/.config/cle)
	ConfigDir string

	// DataDir is the directory for data files (~/.local/share/cle)
	DataDir string
}

// DefaultPaths returns the default paths based on the XDG Base Directory spec.
func DefaultPaths() *Paths {
	home := homeDir()

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}

	return &Paths{
		ConfigDir: filepath.Join(configHome, "cle"),
		DataDir:   filepath.Join(dataHome, "cle"),
	}
}

// ConfigFile returns the path to the configuration file. $CLE_CONFIG wins.
func (p *Paths) ConfigFile() string {
	if v := os.Getenv("CLE_CONFIG"); v != "" {
		return v
	}
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// HistoryFile returns the default path of the line-based history.
func (p *Paths) HistoryFile() string {
	return filepath.Join(p.DataDir, "history")
}

// DatabaseFile returns the path to the SQLite database.
func (p *Paths) DatabaseFile() string {
	return filepath.Join(p.DataDir, "cle.db")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
