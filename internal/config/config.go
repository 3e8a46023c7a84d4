// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server ServerConfig `toml:"server"`
	TMDB   TMDBConfig   `toml:"tmdb"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

type TMDBConfig struct {
	BaseURL         string        `toml:"base_url"`
	APIKey          string        `toml:"api_key"`
	DetailCacheSize int           `toml:"detail_cache_size"`
	SearchCacheSize int           `toml:"search_cache_size"`
	Timeout         time.Duration `toml:"timeout"`
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default loads the built-in defaults without reading a file, used when no
// config file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8480
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if cfg.TMDB.BaseURL == "" {
		cfg.TMDB.BaseURL = "https://api.themoviedb.org/3"
	}
	if cfg.TMDB.DetailCacheSize == 0 {
		cfg.TMDB.DetailCacheSize = 128
	}
	if cfg.TMDB.SearchCacheSize == 0 {
		cfg.TMDB.SearchCacheSize = 32
	}
	if cfg.TMDB.Timeout == 0 {
		cfg.TMDB.Timeout = 10 * time.Second
	}
	// An unset ${TMDB_API_KEY} passes through verbatim; treat it as empty
	if envVarPattern.MatchString(cfg.TMDB.APIKey) {
		cfg.TMDB.APIKey = ""
	}
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1] // Strip ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match // Leave unchanged if not found
	})
}
