package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/tatianab/element-mixer/internal/models"
)

// Config holds the application configuration.
type Config struct {
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	// UserAPIKey is a player's own key. When set it replaces the shared key
	// and lifts the daily limit.
	UserAPIKey string `env:"ELEMENT_MIXER_USER_API_KEY"`
	Model      string `env:"ELEMENT_MIXER_MODEL" envDefault:"gemini-2.5-flash"`

	GameMode models.GameMode `env:"ELEMENT_MIXER_MODE" envDefault:"science"`
	Profile  string          `env:"ELEMENT_MIXER_PROFILE" envDefault:"current"`
	SaveDir  string          `env:"ELEMENT_MIXER_SAVE_DIR" envDefault:".saves"`
	// DBPath switches persistence from YAML files to SQLite.
	DBPath string `env:"ELEMENT_MIXER_DB"`

	DailyLimit   int `env:"ELEMENT_MIXER_DAILY_LIMIT" envDefault:"50"`
	TokenBalance int `env:"ELEMENT_MIXER_TOKEN_BALANCE" envDefault:"0"`

	WorkspaceWidth  float64 `env:"ELEMENT_MIXER_WORKSPACE_WIDTH" envDefault:"960"`
	WorkspaceHeight float64 `env:"ELEMENT_MIXER_WORKSPACE_HEIGHT" envDefault:"640"`
	TokenSize       float64 `env:"ELEMENT_MIXER_TOKEN_SIZE" envDefault:"64"`

	LogLevel  string `env:"ELEMENT_MIXER_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"ELEMENT_MIXER_LOG_FORMAT" envDefault:"text"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.GeminiAPIKey == "" && cfg.UserAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}
	if !cfg.GameMode.Valid() {
		return nil, fmt.Errorf("unknown game mode %q", cfg.GameMode)
	}
	if cfg.TokenSize <= 0 || cfg.WorkspaceWidth < cfg.TokenSize || cfg.WorkspaceHeight < cfg.TokenSize {
		return nil, fmt.Errorf("workspace %gx%g cannot hold tokens of size %g", cfg.WorkspaceWidth, cfg.WorkspaceHeight, cfg.TokenSize)
	}

	return &cfg, nil
}

// APIKey is the key the oracle should use.
func (c *Config) APIKey() string {
	if c.UserAPIKey != "" {
		return c.UserAPIKey
	}
	return c.GeminiAPIKey
}

// HasUserAPIKey reports whether the player supplied their own key.
func (c *Config) HasUserAPIKey() bool {
	return c.UserAPIKey != ""
}
