// Package config loads plugseek's settings from its JSON config file and
// PLUGSEEK_* environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the CLI configuration
type Config struct {
	SpigetURL     string `json:"spiget_url"`
	ModrinthURL   string `json:"modrinth_url"`
	UserAgent     string `json:"user_agent"`
	Limit         int    `json:"limit"`
	Source        string `json:"source"`
	FetchVersions bool   `json:"fetch_versions"`
	Debug         bool   `json:"debug"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		SpigetURL:     "https://api.spiget.org/v2",
		ModrinthURL:   "https://api.modrinth.com/v2",
		UserAgent:     "plugseek (+https://plugseek.dev)",
		Limit:         10,
		Source:        "all",
		FetchVersions: true,
		Debug:         false,
	}
}

// Load builds the effective configuration: baked-in defaults, overlaid by
// the JSON config file when present, overlaid by PLUGSEEK_* environment
// variables. A missing config file is fine; a malformed one is an error.
// A .env file in the working directory is folded into the environment
// before anything is read.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := DefaultConfig()

	path := configPath()
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.normalize()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PLUGSEEK_SPIGET_URL"); v != "" {
		c.SpigetURL = v
	}
	if v := os.Getenv("PLUGSEEK_MODRINTH_URL"); v != "" {
		c.ModrinthURL = v
	}
	if v := os.Getenv("PLUGSEEK_USER_AGENT"); v != "" {
		c.UserAgent = v
	}
	if v := os.Getenv("PLUGSEEK_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Limit = n
		}
	}
	if v := os.Getenv("PLUGSEEK_SOURCE"); v != "" {
		c.Source = v
	}
	if v := os.Getenv("PLUGSEEK_FETCH_VERSIONS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.FetchVersions = b
		}
	}
	if v := os.Getenv("PLUGSEEK_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
}

func (c *Config) normalize() {
	if c.Limit <= 0 {
		c.Limit = 10
	}
	if c.Source == "" {
		c.Source = "all"
	}
}

// configPath returns the config file location, honoring PLUGSEEK_CONFIG
func configPath() string {
	if path := os.Getenv("PLUGSEEK_CONFIG"); path != "" {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory
		return ".plugseek.json"
	}

	return filepath.Join(homeDir, ".config", "plugseek", "config.json")
}
