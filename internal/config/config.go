package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultModel         = "gemini-3-flash-preview"
	DefaultAIBaseURL     = "https://generativelanguage.googleapis.com"
	DefaultAITimeout     = 60
	DefaultCacheTTLHours = 24 * 7
)

type Config struct {
	// logging
	LogLevel      string `toml:"log_level"`
	LogFile       string `toml:"log_file"`
	LogFormatJSON bool   `toml:"log_format_json"`
	// calendar
	Timezone string `toml:"timezone"`

	AI AIConfig `toml:"ai"`
}

type AIConfig struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	CacheTTLHours  int    `toml:"cache_ttl_hours"`
}

func Default() *Config {
	return &Config{
		LogLevel: "warn",
		AI: AIConfig{
			BaseURL:        DefaultAIBaseURL,
			Model:          DefaultModel,
			TimeoutSeconds: DefaultAITimeout,
			CacheTTLHours:  DefaultCacheTTLHours,
		},
	}
}

// Load reads the TOML file at path on top of the defaults. A missing file is
// not an error. Environment variables win over file values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("decode config %s: %w", path, err)
			}
		}
	}
	cfg.applyEnv()
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); key != "" {
		c.AI.APIKey = key
	} else if key := strings.TrimSpace(os.Getenv("API_KEY")); key != "" && c.AI.APIKey == "" {
		c.AI.APIKey = key
	}
	if base := strings.TrimSpace(os.Getenv("NUTRI_AI_BASE_URL")); base != "" {
		c.AI.BaseURL = base
	}
}

func (c *Config) normalize() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Timezone = strings.TrimSpace(c.Timezone)
	if _, err := c.Location(); err != nil {
		return err
	}
	if strings.TrimSpace(c.AI.BaseURL) == "" {
		c.AI.BaseURL = DefaultAIBaseURL
	}
	if strings.TrimSpace(c.AI.Model) == "" {
		c.AI.Model = DefaultModel
	}
	if c.AI.TimeoutSeconds <= 0 {
		c.AI.TimeoutSeconds = DefaultAITimeout
	}
	if c.AI.CacheTTLHours < 0 {
		return fmt.Errorf("ai.cache_ttl_hours must be >= 0")
	}
	return nil
}

// Location resolves the configured timezone; empty means the host zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) AITimeout() time.Duration {
	return time.Duration(c.AI.TimeoutSeconds) * time.Second
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.AI.CacheTTLHours) * time.Hour
}
