package config

import (
	"testing"

	"github.com/tatianab/element-mixer/internal/models"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "shared")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.GameMode != models.ModeScience {
		t.Errorf("GameMode = %q, want science", cfg.GameMode)
	}
	if cfg.DailyLimit != 50 || cfg.TokenSize != 64 || cfg.Model != "gemini-2.5-flash" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.APIKey() != "shared" || cfg.HasUserAPIKey() {
		t.Errorf("APIKey = %q, HasUserAPIKey = %v", cfg.APIKey(), cfg.HasUserAPIKey())
	}
}

func TestLoadConfigUserKeyWins(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "shared")
	t.Setenv("ELEMENT_MIXER_USER_API_KEY", "mine")
	t.Setenv("ELEMENT_MIXER_MODE", "creative")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.APIKey() != "mine" || !cfg.HasUserAPIKey() {
		t.Errorf("APIKey = %q, HasUserAPIKey = %v", cfg.APIKey(), cfg.HasUserAPIKey())
	}
	if cfg.GameMode != models.ModeCreative {
		t.Errorf("GameMode = %q, want creative", cfg.GameMode)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := map[string]map[string]string{
		"missing key": {"GEMINI_API_KEY": "", "ELEMENT_MIXER_USER_API_KEY": ""},
		"bad mode":    {"GEMINI_API_KEY": "k", "ELEMENT_MIXER_MODE": "chaos"},
		"tiny bounds": {"GEMINI_API_KEY": "k", "ELEMENT_MIXER_WORKSPACE_WIDTH": "10"},
		"bad integer": {"GEMINI_API_KEY": "k", "ELEMENT_MIXER_DAILY_LIMIT": "lots"},
	}
	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range vars {
				t.Setenv(k, v)
			}
			if _, err := LoadConfig(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
