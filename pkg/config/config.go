package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvLogLevel          = "ACA_RECIPE_LOG_LEVEL"
	EnvOutputFormat      = "ACA_RECIPE_OUTPUT_FORMAT"
	EnvLocation          = "ACA_RECIPE_LOCATION"
	EnvEnvironmentDomain = "ACA_RECIPE_ENVIRONMENT_DOMAIN"
	EnvDeployTimeout     = "ACA_RECIPE_DEPLOY_TIMEOUT"
)

// Output formats.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config holds the CLI settings that are not part of a recipe invocation.
type Config struct {
	LogLevel string `env:"ACA_RECIPE_LOG_LEVEL"`

	// OutputFormat is "json" or "yaml".
	OutputFormat string `env:"ACA_RECIPE_OUTPUT_FORMAT"`

	// Location and EnvironmentDomain are fallbacks for the matching render
	// flags. Deploy looks both up from the managed environment instead.
	Location          string `env:"ACA_RECIPE_LOCATION"`
	EnvironmentDomain string `env:"ACA_RECIPE_ENVIRONMENT_DOMAIN"`

	DeployTimeout time.Duration `env:"ACA_RECIPE_DEPLOY_TIMEOUT"`
}

// Load applies defaults, then the optional env file, then the process
// environment. Variables already set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	cfg := DefaultConfig()

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:      "info",
		OutputFormat:  OutputJSON,
		DeployTimeout: 10 * time.Minute,
	}
}

func loadFromEnv(cfg *Config) error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv(EnvOutputFormat); v != "" {
		cfg.OutputFormat = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLocation); v != "" {
		cfg.Location = v
	}
	if v := os.Getenv(EnvEnvironmentDomain); v != "" {
		cfg.EnvironmentDomain = v
	}
	if v := os.Getenv(EnvDeployTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDeployTimeout, err)
		}
		cfg.DeployTimeout = d
	}
	return nil
}

func (c *Config) Validate() error {
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.LogLevel) {
		return fmt.Errorf("log_level must be one of: debug, info, warn, error")
	}
	if !slices.Contains([]string{OutputJSON, OutputYAML}, c.OutputFormat) {
		return fmt.Errorf("output_format must be one of: json, yaml")
	}
	if c.DeployTimeout <= 0 {
		return fmt.Errorf("deploy_timeout must be positive")
	}
	return nil
}
