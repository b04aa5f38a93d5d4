package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LLM.Provider != "openai" || cfg.LLM.Model != "gpt-4o" {
		t.Errorf("unexpected defaults %+v", cfg.LLM)
	}
	if cfg.LLM.APIKey != "sk-test" {
		t.Errorf("env key not applied: %q", cfg.LLM.APIKey)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("unexpected server defaults %+v", cfg.Server)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
llm:
  provider: anthropic
  api_key: file-key
  model: claude-sonnet-4
  temperature: 0.2
tools:
  tavily_api_key: tvly-file
server:
  addr: ":9090"
token_budget: 50000
log_level: debug
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LLM.Provider != "anthropic" || cfg.LLM.APIKey != "file-key" {
		t.Errorf("file values not applied: %+v", cfg.LLM)
	}
	if cfg.LLM.Temperature != 0.2 {
		t.Errorf("unexpected temperature %v", cfg.LLM.Temperature)
	}
	if cfg.TokenBudget != 50000 || cfg.LogLevel != "debug" {
		t.Errorf("unexpected top-level values %+v", cfg)
	}
	if cfg.Tools.TavilyAPIKey != "tvly-file" {
		t.Errorf("tool key not applied: %q", cfg.Tools.TavilyAPIKey)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "env-key")
	t.Setenv("GOOGLE_MAPS_API_KEY", "maps-env")
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
llm:
  provider: anthropic
  api_key: file-key
  model: claude-sonnet-4
tools:
  google_maps_api_key: maps-file
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LLM.APIKey != "env-key" {
		t.Errorf("env should win over file: %q", cfg.LLM.APIKey)
	}
	if cfg.Tools.GoogleMapsAPIKey != "maps-env" {
		t.Errorf("env should win over file: %q", cfg.Tools.GoogleMapsAPIKey)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	cfg := Default()
	if err := cfg.Validate(); err == nil {
		t.Error("missing api key should fail validation")
	}
	cfg.LLM.APIKey = "sk-test"
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
	cfg.LLM.Provider = "unknown"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown provider should fail validation")
	}
	cfg.LLM.Provider = "openai"
	cfg.LLM.Temperature = 5
	if err := cfg.Validate(); err == nil {
		t.Error("out-of-range temperature should fail validation")
	}
}
