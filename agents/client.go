package agents

import (
	"github.com/bububa/instructor-go/pkg/instructor"
	cohereClient "github.com/cohere-ai/cohere-go/v2/client"
	cohereOption "github.com/cohere-ai/cohere-go/v2/option"
	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"
)

// ClientConfig carries provider credentials for NewInstructor.
type ClientConfig struct {
	Provider instructor.Provider
	APIKey   string
	BaseURL  string
	// MaxRetries caps structured-output reask attempts.
	MaxRetries int
}

// ProviderFromName maps a provider name to its instructor constant,
// defaulting to OpenAI.
func ProviderFromName(name string) instructor.Provider {
	switch name {
	case "anthropic":
		return instructor.ProviderAnthropic
	case "cohere":
		return instructor.ProviderCohere
	default:
		return instructor.ProviderOpenAI
	}
}

// NewInstructor builds an instructor client for the configured provider.
func NewInstructor(cfg ClientConfig) instructor.Instructor {
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = 3
	}
	switch cfg.Provider {
	case instructor.ProviderAnthropic:
		opts := make([]anthropic.ClientOption, 0, 1)
		if cfg.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
		}
		clt := anthropic.NewClient(cfg.APIKey, opts...)
		return instructor.FromAnthropic(clt, instructor.WithMode(instructor.ModeJSON), instructor.WithMaxRetries(retries), instructor.WithValidation())
	case instructor.ProviderCohere:
		opts := make([]cohereOption.RequestOption, 0, 2)
		opts = append(opts, cohereOption.WithToken(cfg.APIKey))
		if cfg.BaseURL != "" {
			opts = append(opts, cohereOption.WithBaseURL(cfg.BaseURL))
		}
		clt := cohereClient.NewClient(opts...)
		return instructor.FromCohere(clt, instructor.WithMode(instructor.ModeJSON), instructor.WithMaxRetries(retries), instructor.WithValidation())
	default:
		openaiCfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			openaiCfg.BaseURL = cfg.BaseURL
		}
		clt := openai.NewClientWithConfig(openaiCfg)
		return instructor.FromOpenAI(clt, instructor.WithMode(instructor.ModeJSON), instructor.WithMaxRetries(retries), instructor.WithValidation())
	}
}
