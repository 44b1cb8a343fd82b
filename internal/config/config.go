package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	DatabaseURL string `envconfig:"DATABASE_URL" default:""`
	DBMinConns  int32  `envconfig:"FF_DB_MIN_CONNS" default:"1"`
	DBMaxConns  int32  `envconfig:"FF_DB_MAX_CONNS" default:"8"`

	DataDir   string `envconfig:"FF_DATA_DIR" default:"data"`
	OutputDir string `envconfig:"FF_OUTPUT_DIR" default:"output"`

	GenerationAPIKey  string  `envconfig:"GENERATION_API_KEY" default:""`
	GenerationBaseURL string  `envconfig:"GENERATION_BASE_URL" default:"https://api.vectorengine.ai/v1"`
	GenerationModel   string  `envconfig:"GENERATION_MODEL" default:"grok-4-fast"`
	GenerationTopK    int     `envconfig:"GENERATION_TOP_K" default:"12"`
	GenerationMaxTok  int     `envconfig:"GENERATION_MAX_TOKENS" default:"4000"`
	GenerationTemp    float32 `envconfig:"GENERATION_TEMPERATURE" default:"0.7"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DBMinConns < 0 {
		return fmt.Errorf("FF_DB_MIN_CONNS must be >= 0")
	}
	if c.DBMaxConns < 1 {
		return fmt.Errorf("FF_DB_MAX_CONNS must be >= 1")
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("FF_DB_MIN_CONNS (%d) cannot exceed FF_DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("FF_DATA_DIR is required")
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("FF_OUTPUT_DIR is required")
	}
	if c.GenerationTopK < 1 {
		return fmt.Errorf("GENERATION_TOP_K must be >= 1")
	}
	return nil
}

// RequireDatabase validates the fields that only database-facing commands need.
func (c *Config) RequireDatabase() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

// RequireGeneration validates the fields that only the generate command needs.
func (c *Config) RequireGeneration() error {
	if strings.TrimSpace(c.GenerationAPIKey) == "" {
		return fmt.Errorf("GENERATION_API_KEY is required")
	}
	if strings.TrimSpace(c.GenerationBaseURL) == "" {
		return fmt.Errorf("GENERATION_BASE_URL is required")
	}
	if strings.TrimSpace(c.GenerationModel) == "" {
		return fmt.Errorf("GENERATION_MODEL is required")
	}
	return nil
}
