// Package config defines the necessary types to configure the application.
// An example config file config.yaml is provided in the repository.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

type Config struct {
	Logger Logger `yaml:"logger"`

	Telegram Telegram `yaml:"telegram"`
	Catalog  Catalog  `yaml:"catalog"`
	Database Database `yaml:"database"`
	Session  Session  `yaml:"session"`
	Bot      Bot      `yaml:"bot"`
	Migrate  Migrate  `yaml:"migrate"`
}

type Logger struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Telegram struct {
	Token       ValueRef      `yaml:"token"`
	PollTimeout time.Duration `yaml:"pollTimeout"`
}

type Catalog struct {
	BaseURL string        `yaml:"baseURL"`
	APIKey  ValueRef      `yaml:"apiKey"`
	Timeout time.Duration `yaml:"timeout"`
}

type Database struct {
	Name     string   `yaml:"name"`
	Port     string   `yaml:"port"`
	Host     ValueRef `yaml:"host"`
	User     ValueRef `yaml:"user"`
	Password ValueRef `yaml:"password"`
}

type Session struct {
	Store   string        `yaml:"store"`
	IdleTTL time.Duration `yaml:"idleTTL"`
	ValKey  ValKey        `yaml:"valkey"`
}

type ValKey struct {
	Host     ValueRef `yaml:"host"`
	User     ValueRef `yaml:"user"`
	Password ValueRef `yaml:"password"`
	Prefix   string   `yaml:"prefix"`
}

type Bot struct {
	Pacing time.Duration `yaml:"pacing"`
}

type Migrate struct {
	Source string `yaml:"source"`
}

// Load reads the YAML config at path and applies defaults. A .env file in
// the working directory is loaded first so env-sourced refs resolve without
// exporting variables by hand.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.Format == "" {
		c.Logger.Format = "json"
	}
	if c.Telegram.PollTimeout <= 0 {
		c.Telegram.PollTimeout = 10 * time.Second
	}
	if c.Catalog.Timeout <= 0 {
		c.Catalog.Timeout = 10 * time.Second
	}
	if c.Session.Store == "" {
		c.Session.Store = "memory"
	}
	if c.Session.IdleTTL <= 0 {
		c.Session.IdleTTL = 30 * time.Minute
	}
	if c.Session.ValKey.Prefix == "" {
		c.Session.ValKey.Prefix = "cinegram"
	}
	if c.Migrate.Source == "" {
		c.Migrate.Source = "embedded"
	}
}
