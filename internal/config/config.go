// Package config defines service configuration structures and loading hooks.
//
// Conventions:
//   - Defaults come from New; Load layers an optional YAML file and env vars on top.
//   - Functions that may block accept context.Context as the first parameter.
//   - Errors are wrapped with this package's sentinel kinds.
package config

import (
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogJSON switches log output to JSON.
	LogJSON bool `koanf:"log_json"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// StorageDriver selects the history backend: memory, file or sqlite.
	StorageDriver string `koanf:"storage_driver"`

	// StoragePath is the SQLite database file or the file store directory.
	// A leading "~" is expanded to the user's home directory.
	StoragePath string `koanf:"storage_path"`

	// HistoryLimit caps the number of persisted history entries.
	HistoryLimit int `koanf:"history_limit"`

	// TimeZone is the IANA zone used to render history timestamps ("Local" by default).
	TimeZone string `koanf:"time_zone"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		Addr:          ":9080",
		StorageDriver: "sqlite",
		StoragePath:   filepath.Join("~", ".fitcheck", "fitcheck.db"),
		HistoryLimit:  10,
		TimeZone:      "Local",
	}
}

// ResolvedStoragePath returns StoragePath with "~" expanded.
func (c *Config) ResolvedStoragePath() (string, error) {
	return homedir.Expand(c.StoragePath)
}
