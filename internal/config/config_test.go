package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if cfg.Solver.Length != nil || cfg.Log.Level != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `[solver]
lang = "en"
length = 6
prefix = "st"
show = 20
format = "json"

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Solver.Length == nil || *cfg.Solver.Length != 6 {
		t.Fatalf("unexpected length: %v", cfg.Solver.Length)
	}
	if cfg.Solver.Prefix == nil || *cfg.Solver.Prefix != "st" {
		t.Fatalf("unexpected prefix: %v", cfg.Solver.Prefix)
	}
	if cfg.Solver.Wordlist != nil {
		t.Fatalf("wordlist should stay unset")
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level: %v", cfg.Log.Level)
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[solver]\nwords = 25\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "solver.words") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	t.Setenv("XDG_CACHE_HOME", "/tmp/cache")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/cfg", "wordhint", "config.toml") {
		t.Fatalf("unexpected config path: %s", got)
	}
	if got := DefaultWordListPath("en"); got != filepath.Join("/tmp/cfg", "wordhint", "wordlists", "en.txt") {
		t.Fatalf("unexpected word list path: %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/tmp/data", "wordhint", "games.db") {
		t.Fatalf("unexpected db path: %s", got)
	}
	if got := DefaultWordfreqCacheDir(); got != filepath.Join("/tmp/cache", "wordhint", "wordfreq") {
		t.Fatalf("unexpected cache dir: %s", got)
	}
}

func TestXDGFallsBackToHome(t *testing.T) {
	t.Setenv("HOME", "/tmp/home")
	t.Setenv("XDG_CACHE_HOME", "")
	if got := XDGCacheHome(); got != filepath.Join("/tmp/home", ".cache") {
		t.Fatalf("unexpected cache home: %s", got)
	}
}
