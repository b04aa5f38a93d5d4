package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bububa/travel-agents/travel"
)

func newPlanCmd() *cobra.Command {
	var (
		solo      bool
		showJSON  bool
		showTrace bool
	)
	cmd := &cobra.Command{
		Use:   "plan [query]",
		Short: "Plan a trip from a free-form query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			agent := newTravelAgent()
			mode := travel.MultiMode
			if solo {
				mode = travel.SoloMode
			}
			log.Info().Str("mode", mode).Str("query", query).Msg("planning trip")
			result, err := agent.PlanMode(cmd.Context(), mode, query)
			if err != nil {
				return err
			}
			log.Info().
				Int("input_tokens", result.Usage.InputTokens).
				Int("output_tokens", result.Usage.OutputTokens).
				Msg("planning done")
			if showJSON {
				fmt.Fprintln(cmd.OutOrStdout(), result.Plan.String())
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), result.Markdown)
			}
			if showTrace {
				bs, err := json.MarshalIndent(result.Trace, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(bs))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&solo, "solo", false, "answer with a single agent instead of the specialist team")
	cmd.Flags().BoolVar(&showJSON, "json", false, "print the structured plan as JSON")
	cmd.Flags().BoolVar(&showTrace, "trace", false, "append the agent trace as JSON")
	return cmd
}
