// Package config provides configuration loading for benchreport.
// Precedence, lowest to highest: defaults, optional YAML file,
// environment variables, command-line flags (applied by the CLI).
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up in the working directory
// when BENCHREPORT_CONFIG is not set.
const DefaultFile = "benchreport.yaml"

// Config holds the report generation settings.
type Config struct {
	// DBURL is the results database DSN. Never put a password here;
	// the driver reads it from the environment or a password file.
	DBURL string `yaml:"db_url"`
	// Environments are name LIKE patterns selecting environments.
	Environments []string `yaml:"environments"`
	// SQLDir is the directory with query files (or a single file).
	SQLDir string `yaml:"sql_dir"`
	// Output is the report filename, or "-" for stdout.
	Output string `yaml:"output"`
	// RepoURL is the base URL for query-file permalinks.
	RepoURL string `yaml:"repo_url"`
	// LogLevel sets logging verbosity (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DBURL:        "postgres://postgres@localhost:5432/benchto",
		Environments: []string{"%"},
		SQLDir:       ".",
		Output:       "-",
		RepoURL:      "https://github.com/benchlab/benchreport",
		LogLevel:     "warn",
	}
}

// Load reads the config file if one exists and applies environment
// variable overrides. A missing file is not an error.
func Load() (*Config, error) {
	cfg := Default()

	path := os.Getenv("BENCHREPORT_CONFIG")
	if path == "" {
		path = DefaultFile
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.mergeEnv()
	return cfg, nil
}

func (c *Config) mergeEnv() {
	if v := os.Getenv("DB_URL"); v != "" {
		c.DBURL = v
	}
	if v := os.Getenv("ENVIRONMENTS"); v != "" {
		c.Environments = strings.Split(v, ",")
	}
}
