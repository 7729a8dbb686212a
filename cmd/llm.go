package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tutorloop/tutorloop/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM provider configuration",
}

var llmProbeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Send a test request to the configured provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, ok := discoverLLMConfig()
		if !ok {
			return fmt.Errorf("no provider configured: set TUTORLOOP_LLM_PROVIDER and an API key")
		}

		provider, err := llm.NewProvider(cmd.Context(), cfg, nil)
		if err != nil {
			return fmt.Errorf("create provider: %w", err)
		}

		ctx := llm.WithPurpose(cmd.Context(), "probe")
		resp, err := provider.Generate(ctx, llm.Request{
			Messages:  []llm.Message{{Role: llm.RoleUser, Content: "Reply with the single word: ok"}},
			MaxTokens: 16,
		})
		if err != nil {
			return fmt.Errorf("probe failed: %w", err)
		}

		fmt.Printf("provider: %s\nmodel: %s\ntokens: %d in / %d out\n",
			cfg.Provider, resp.Model, resp.Usage.InputTokens, resp.Usage.OutputTokens)
		if c := llm.LookupCost(resp.Model); c != nil {
			fmt.Printf("cost: $%.6f\n", c.Cost(resp.Usage.InputTokens, resp.Usage.OutputTokens))
		}
		return nil
	},
}

func init() {
	llmCmd.AddCommand(llmProbeCmd)
}
