// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appName = "wordhint"

// XDGConfigHome returns $XDG_CONFIG_HOME, falling back to ~/.config.
func XDGConfigHome() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// XDGDataHome returns $XDG_DATA_HOME, falling back to ~/.local/share.
func XDGDataHome() string {
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}

// XDGCacheHome returns $XDG_CACHE_HOME, falling back to ~/.cache.
func XDGCacheHome() string {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

func xdgDir(env string, fallback ...string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// DefaultConfigPath is where `wordhint config` creates the TOML file.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

// DefaultWordListDir holds one <lang>.txt list per downloaded language.
func DefaultWordListDir() string {
	return filepath.Join(XDGConfigHome(), appName, "wordlists")
}

// DefaultWordListPath is the list used when --wordlist is not given.
func DefaultWordListPath(lang string) string {
	return filepath.Join(DefaultWordListDir(), lang+".txt")
}

// DefaultDBPath is the SQLite game journal.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appName, "games.db")
}

// DefaultWordfreqCacheDir keeps downloaded wordfreq wheels between runs.
func DefaultWordfreqCacheDir() string {
	return filepath.Join(XDGCacheHome(), appName, "wordfreq")
}
