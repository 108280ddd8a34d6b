// Package config loads the optional TOML settings file.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Settings holds the tunable runtime options. Everything has a working
// default; a settings file only overrides.
type Settings struct {
	// HashTableSizeMB sizes the transposition table.
	HashTableSizeMB int `toml:"hash_table_size_mb"`
	// SearchDepth is the default depth for engine moves.
	SearchDepth int `toml:"search_depth"`
	// LogLevel is one of debug, info, warning, error.
	LogLevel string `toml:"log_level"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		HashTableSizeMB: 128,
		SearchDepth:     5,
		LogLevel:        "info",
	}
}

// Load reads path into the defaults. A missing file is not an error;
// the defaults are returned unchanged.
func Load(path string) (Settings, error) {
	s := Defaults()
	if path == "" {
		return s, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return s, nil
	}
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return s, err
	}
	return s, nil
}
