package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bububa/travel-agents/agents"
	"github.com/bububa/travel-agents/config"
	"github.com/bububa/travel-agents/travel"
)

var (
	cfgFile string
	cfg     *config.Config
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "travel-agents",
		Short:         "Multi-agent travel planner",
		Long:          "Plans trips by delegating flights, hotels, restaurants, activities and weather to specialist agents.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(cfgFile); err != nil {
				return err
			}
			if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && cfg.LogLevel != "" {
				log = log.Level(level)
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	cmd.AddCommand(newPlanCmd(), newServeCmd())
	return cmd
}

// newTravelAgent wires the full planning stack from the loaded config.
func newTravelAgent() *travel.TravelAgent {
	client := agents.NewInstructor(agents.ClientConfig{
		Provider:   agents.ProviderFromName(cfg.LLM.Provider),
		APIKey:     cfg.LLM.APIKey,
		BaseURL:    cfg.LLM.BaseURL,
		MaxRetries: cfg.LLM.MaxRetries,
	})
	kit := travel.NewToolkit(
		travel.WithMapsAPIKey(cfg.Tools.GoogleMapsAPIKey),
		travel.WithWeatherAPIKey(cfg.Tools.GoogleWeatherAPIKey),
		travel.WithTavilyAPIKey(cfg.Tools.TavilyAPIKey),
		travel.WithToolkitMaxResults(cfg.Tools.MaxResults),
	)
	agentCfg := travel.AgentConfig{
		Client:      client,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}
	return travel.NewTravelAgent(agentCfg, kit, travel.WithTokenBudget(cfg.TokenBudget))
}
