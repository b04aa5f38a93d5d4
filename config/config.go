// Package config loads the application configuration from YAML with
// environment variable overrides for every credential.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// LLM configures the model every agent runs on.
type LLM struct {
	// Provider one of openai, anthropic, cohere.
	Provider string `yaml:"provider" validate:"omitempty,oneof=openai anthropic cohere"`
	// APIKey provider API key. Overridden by the provider's env var.
	APIKey string `yaml:"api_key"`
	// BaseURL optional API endpoint override.
	BaseURL string `yaml:"base_url" validate:"omitempty,url"`
	// Model the model name.
	Model string `yaml:"model" validate:"required"`
	// Temperature sampling temperature.
	Temperature float32 `yaml:"temperature" validate:"gte=0,lte=2"`
	// MaxTokens per-completion token cap.
	MaxTokens int `yaml:"max_tokens" validate:"gte=0"`
	// MaxRetries structured-output validation retries.
	MaxRetries int `yaml:"max_retries" validate:"gte=0,lte=10"`
}

// Tools configures the external tool credentials.
type Tools struct {
	// GoogleMapsAPIKey key for geocoding, places and directions.
	GoogleMapsAPIKey string `yaml:"google_maps_api_key"`
	// GoogleWeatherAPIKey key for the weather API. Defaults to the maps key.
	GoogleWeatherAPIKey string `yaml:"google_weather_api_key"`
	// TavilyAPIKey key for web search.
	TavilyAPIKey string `yaml:"tavily_api_key"`
	// MaxResults caps results per tool query.
	MaxResults int `yaml:"max_results" validate:"gte=0,lte=20"`
}

// Server configures the HTTP dashboard.
type Server struct {
	// Addr listen address.
	Addr string `yaml:"addr"`
	// DBPath SQLite database path.
	DBPath string `yaml:"db_path"`
}

// Config is the application configuration.
type Config struct {
	LLM    LLM    `yaml:"llm"`
	Tools  Tools  `yaml:"tools"`
	Server Server `yaml:"server"`
	// TokenBudget caps tokens per planning run. Zero means no cap.
	TokenBudget int64 `yaml:"token_budget" validate:"gte=0"`
	// LogLevel zerolog level name.
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=trace debug info warn error"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LLM: LLM{
			Provider:    "openai",
			Model:       "gpt-4o",
			Temperature: 0.5,
			MaxTokens:   4096,
			MaxRetries:  3,
		},
		Tools: Tools{
			MaxResults: 5,
		},
		Server: Server{
			Addr:   ":8080",
			DBPath: "travel-agents.db",
		},
		TokenBudget: 0,
		LogLevel:    "info",
	}
}

// Load reads the configuration file at path (optional), applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		bs, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(bs, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv lets environment variables override file credentials so keys
// never have to live in the config file.
func (c *Config) applyEnv() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = "openai"
	}
	switch c.LLM.Provider {
	case "anthropic":
		setFromEnv(&c.LLM.APIKey, "ANTHROPIC_API_KEY")
	case "cohere":
		setFromEnv(&c.LLM.APIKey, "COHERE_API_KEY")
	default:
		setFromEnv(&c.LLM.APIKey, "OPENAI_API_KEY")
	}
	setFromEnv(&c.Tools.GoogleMapsAPIKey, "GOOGLE_MAPS_API_KEY")
	setFromEnv(&c.Tools.GoogleWeatherAPIKey, "GOOGLE_WEATHER_API_KEY")
	setFromEnv(&c.Tools.TavilyAPIKey, "TAVILY_API_KEY")
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks the configuration beyond what parsing enforces.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("missing LLM api key for provider %s", c.LLM.Provider)
	}
	return nil
}
