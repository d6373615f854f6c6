package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/verte-zerg/wordhint/internal/config"
	"github.com/verte-zerg/wordhint/internal/model"
)

func TestParseGuessFlag(t *testing.T) {
	entry, err := parseGuessFlag("crane=bbygb")
	if err != nil {
		t.Fatalf("parseGuessFlag: %v", err)
	}
	if entry.Guess != "crane" || entry.Feedback != "bbygb" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry, err = parseGuessFlag("moist:BGBYB"); err != nil || entry.Feedback != "BGBYB" {
		t.Fatalf("colon separator: %+v, %v", entry, err)
	}
	for _, raw := range []string{"crane", "=bbygb", "crane="} {
		if _, err := parseGuessFlag(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestValidateConfig(t *testing.T) {
	base := model.Config{Lang: "en", Length: 5, Show: 10, Format: "text"}
	if err := validateConfig(base); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	cases := map[string]model.Config{
		"length": {Lang: "en", Length: 0, Format: "text"},
		"show":   {Lang: "en", Length: 5, Show: -1, Format: "text"},
		"format": {Lang: "en", Length: 5, Format: "yaml"},
		"prefix": {Lang: "en", Length: 2, Prefix: "abc", Format: "text"},
		"lang":   {Length: 5, Format: "text"},
	}
	for name, cfg := range cases {
		if err := validateConfig(cfg); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestResolveWordlistLangs(t *testing.T) {
	available := []string{"de", "en", "fr"}

	langs, all, err := resolveWordlistLangs("", available)
	if err != nil || all || !reflect.DeepEqual(langs, []string{"en"}) {
		t.Fatalf("default: %v %v %v", langs, all, err)
	}
	langs, all, err = resolveWordlistLangs("all", available)
	if err != nil || !all || !reflect.DeepEqual(langs, available) {
		t.Fatalf("all: %v %v %v", langs, all, err)
	}
	langs, _, err = resolveWordlistLangs("FR, de", available)
	if err != nil || !reflect.DeepEqual(langs, []string{"fr", "de"}) {
		t.Fatalf("list: %v %v", langs, err)
	}
	if _, _, err := resolveWordlistLangs("xx", available); err == nil {
		t.Fatalf("expected unknown language error")
	}
}

func TestGameConfigUsesStoredShape(t *testing.T) {
	cfg := model.Config{Lang: "en", Length: 5, WordListPath: "/tmp/en.txt", Show: 3, Format: "json"}
	got := gameConfig(cfg, model.Game{Lang: "de", Length: 6, Prefix: "st", WordListPath: "/tmp/de.txt"})
	want := model.Config{Lang: "de", Length: 6, Prefix: "st", WordListPath: "/tmp/de.txt", Show: 3, Format: "json"}
	if got != want {
		t.Fatalf("unexpected config:\nwant %+v\ngot  %+v", want, got)
	}
}

func TestDefaultConfigTemplateLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	template := defaultConfigTemplate()
	if err := os.WriteFile(path, []byte(template), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.LoadConfig(path); err != nil {
		t.Fatalf("template should load: %v", err)
	}

	// Uncommenting every value must still be a valid config.
	var lines []string
	for _, line := range strings.Split(template, "\n") {
		if strings.HasPrefix(line, "# ") && strings.Contains(line, " = ") {
			line = strings.TrimPrefix(line, "# ")
		}
		lines = append(lines, line)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("uncommented template should load: %v", err)
	}
	if cfg.Solver.Length == nil || *cfg.Solver.Length != defaultLength {
		t.Fatalf("expected length %d, got %v", defaultLength, cfg.Solver.Length)
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != defaultLogLevel {
		t.Fatalf("expected log level %q, got %v", defaultLogLevel, cfg.Log.Level)
	}
}

func TestWordListLoadErrorHints(t *testing.T) {
	err := wordListLoadError("en", "/x/en.txt", os.ErrNotExist)
	msg := err.Error()
	if !strings.Contains(msg, "wordhint wordlist --lang en") || !strings.Contains(msg, "/x/en.txt") {
		t.Fatalf("unexpected message: %s", msg)
	}
}
