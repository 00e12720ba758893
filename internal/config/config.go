// Package config provides configuration loading and validation for the LexaLab API.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultPort is used when neither the config file, the environment, nor a flag sets a port.
const DefaultPort = 8080

// Config represents the process configuration that can be loaded from a YAML file.
// All fields are optional; missing values use defaults, environment variables, or CLI flags.
type Config struct {
	Port        int    `yaml:"port,omitempty"`         // HTTP listen port
	LogLevel    string `yaml:"log_level,omitempty"`    // logrus level name
	LogFile     string `yaml:"log_file,omitempty"`     // Optional log file, in addition to stdout
	PhrasesFile string `yaml:"phrases_file,omitempty"` // Optional phrase catalog replacing the built-in one
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:     DefaultPort,
		LogLevel: "info",
	}
}

// LoadConfig loads configuration from a YAML file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get current directory")
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config YAML")
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from environment variables (PORT, LOG_LEVEL, LOG_FILE, PHRASES_FILE).
// lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "invalid PORT %q", v)
		}
		c.Port = port
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup("LOG_FILE"); ok && v != "" {
		c.LogFile = v
	}
	if v, ok := lookup("PHRASES_FILE"); ok && v != "" {
		c.PhrasesFile = v
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}

	if c.PhrasesFile != "" {
		if _, err := os.Stat(c.PhrasesFile); os.IsNotExist(err) {
			return errors.Errorf("config error: phrases file not found: %s", c.PhrasesFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFile == "" {
		result.LogFile = defaults.LogFile
	}
	if result.PhrasesFile == "" {
		result.PhrasesFile = defaults.PhrasesFile
	}

	return result
}

// Load resolves the effective configuration: defaults, then the optional file, then the environment.
func Load(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	if err := cfg.ApplyEnv(lookup); err != nil {
		return cfg, err
	}

	return cfg, nil
}
