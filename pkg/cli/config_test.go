package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Colors != "auto" {
		t.Errorf("expected auto colors, got %q", cfg.Colors)
	}
	if !cfg.History.Enabled {
		t.Error("expected history enabled by default")
	}
	if cfg.Prompt != "gwn> " {
		t.Errorf("expected default prompt, got %q", cfg.Prompt)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, configFileName)
	content := "colors: never\nhistory:\n  enabled: false\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Colors != "never" {
		t.Errorf("expected never, got %q", cfg.Colors)
	}
	if cfg.History.Enabled {
		t.Error("expected history disabled")
	}
	// Untouched keys keep their defaults.
	if cfg.History.Path == "" && defaultHistoryPath() != "" {
		t.Error("expected default history path to survive a partial config")
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Colors != "auto" {
		t.Errorf("expected defaults, got %q", cfg.Colors)
	}
}

func TestLoadConfigRejectsBrokenYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, configFileName)
	if err := os.WriteFile(path, []byte("colors: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected an error for broken yaml")
	}
}

func TestFindConfig(t *testing.T) {
	dir := t.TempDir()
	if got := FindConfig(dir); got != "" && filepath.Dir(got) == dir {
		t.Errorf("expected no config in empty dir, got %q", got)
	}

	path := filepath.Join(dir, configFileName)
	if err := os.WriteFile(path, []byte("colors: always\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := FindConfig(dir); got != path {
		t.Errorf("expected %q, got %q", path, got)
	}
}
