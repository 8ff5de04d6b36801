// Package config loads the site configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "overlay.yaml"

// Config is the content of overlay.yaml.
type Config struct {
	Title    string `yaml:"title"`
	Tagline  string `yaml:"tagline"`
	BaseURL  string `yaml:"base_url"`
	Dir      string `yaml:"dir"`
	Format   string `yaml:"format"`
	LogLevel string `yaml:"log_level"`

	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
}

// ServerConfig configures `overlay serve`.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// RedisConfig enables the Redis page cache when Addr is set.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Title:    "Documentation",
		BaseURL:  "/",
		Dir:      "docs",
		Format:   "html",
		LogLevel: "info",
		Server:   ServerConfig{Port: "8080"},
	}
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}
