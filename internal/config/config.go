// Package config reads and writes moneymap.yaml.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name inside the data directory.
const FileName = "moneymap.yaml"

// Config is the top-level moneymap.yaml configuration.
type Config struct {
	LogLevel string       `yaml:"log_level"`
	Server   ServerConfig `yaml:"server"`
	Git      GitConfig    `yaml:"git"`
}

// ServerConfig controls the dashboard HTTP server.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// GitConfig controls versioning of the data directory.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a moneymap.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8787
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the configuration written by `moneymap init`.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Server:   ServerConfig{Port: 8787},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "moneymap",
			AuthorEmail: "moneymap@localhost",
		},
	}
}
