package cli

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the optional gwn.yml next to the source file or in the home
// directory. Everything has a usable default, so the file is never required.
type Config struct {
	Colors  string `yaml:"colors"` // auto, always, never
	Prompt  string `yaml:"prompt"`
	History struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"history"`
}

const configFileName = "gwn.yml"

func DefaultConfig() *Config {
	cfg := &Config{Colors: "auto", Prompt: "gwn> "}
	cfg.History.Enabled = true
	cfg.History.Path = defaultHistoryPath()
	return cfg
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gwn", "history.db")
}

// FindConfig looks for gwn.yml in dir and then in the home directory.
func FindConfig(dir string) string {
	candidate := filepath.Join(dir, configFileName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// LoadConfig reads path over the defaults. An empty path returns the
// defaults unchanged.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
