// Package config loads recipedesk settings from an optional YAML file,
// a .env file and RECIPEDESK_* environment variables.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "recipedesk.yaml"

// Config holds all recipedesk configuration.
type Config struct {
	API    APIConfig    `yaml:"api"`
	Images ImagesConfig `yaml:"images"`
	Log    LogConfig    `yaml:"log"`
	Stub   StubConfig   `yaml:"stub"`
}

// APIConfig locates the remote catalog.
type APIConfig struct {
	// Base is the API root; RecipesURL and MatchURL default to
	// <base>/recipes and <base>/match_checker when empty.
	Base       string `yaml:"base"`
	RecipesURL string `yaml:"recipes_url"`
	MatchURL   string `yaml:"match_url"`
	Timeout    string `yaml:"timeout"` // Go duration, e.g. "15s"
}

// ImagesConfig controls image import preprocessing.
type ImagesConfig struct {
	MaxWidth uint `yaml:"max_width"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"` // off, normal, verbose
	File  string `yaml:"file"`  // path, or "stderr"
}

// StubConfig configures the in-process stub catalog server.
type StubConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Base:    "http://localhost:8000",
			Timeout: "15s",
		},
		Images: ImagesConfig{MaxWidth: 800},
		Log: LogConfig{
			Level: "normal",
			File:  filepath.Join(".recipedesk", "recipedesk.log"),
		},
		Stub: StubConfig{
			Addr:        "127.0.0.1:8000",
			CORSOrigins: []string{"http://localhost:5173"},
		},
	}
}

// Load reads .env (if present), then the YAML file at path (if present),
// then applies environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// defaults
	default:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides applies RECIPEDESK_* environment variables.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("RECIPEDESK_API_BASE"); v != "" {
		c.API.Base = v
	}
	if v := os.Getenv("RECIPEDESK_RECIPES_URL"); v != "" {
		c.API.RecipesURL = v
	}
	if v := os.Getenv("RECIPEDESK_MATCH_URL"); v != "" {
		c.API.MatchURL = v
	}
	if v := os.Getenv("RECIPEDESK_TIMEOUT"); v != "" {
		c.API.Timeout = v
	}
	if v := os.Getenv("RECIPEDESK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("RECIPEDESK_LOG_FILE"); v != "" {
		c.Log.File = v
	}
}

// RecipesBase returns the recipes endpoint root.
func (c *Config) RecipesBase() string {
	if c.API.RecipesURL != "" {
		return strings.TrimRight(c.API.RecipesURL, "/")
	}
	return strings.TrimRight(c.API.Base, "/") + "/recipes"
}

// MatchBase returns the match checker endpoint root.
func (c *Config) MatchBase() string {
	if c.API.MatchURL != "" {
		return strings.TrimRight(c.API.MatchURL, "/")
	}
	return strings.TrimRight(c.API.Base, "/") + "/match_checker"
}

// HTTPTimeout parses the configured timeout.
func (c *Config) HTTPTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 0, fmt.Errorf("api timeout %q: %w", c.API.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("api timeout %q: must be positive", c.API.Timeout)
	}
	return d, nil
}

// Validate checks that the endpoints and timeout are usable.
func (c *Config) Validate() error {
	for name, raw := range map[string]string{
		"recipes url": c.RecipesBase(),
		"match url":   c.MatchBase(),
	} {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("%s %q: %w", name, raw, err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%s %q: need an http(s) URL with a host", name, raw)
		}
	}
	if _, err := c.HTTPTimeout(); err != nil {
		return err
	}
	if c.Images.MaxWidth == 0 {
		return fmt.Errorf("images max_width must be positive")
	}
	return nil
}
