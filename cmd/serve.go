package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tutorloop/tutorloop/internal/decompose"
	"github.com/tutorloop/tutorloop/internal/evaluate"
	"github.com/tutorloop/tutorloop/internal/llm"
	"github.com/tutorloop/tutorloop/internal/server"
	"github.com/tutorloop/tutorloop/internal/session"
	"github.com/tutorloop/tutorloop/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mem := store.NewMemory()
	repos := session.Repos{
		Goals:     mem.Goals(),
		Graphs:    mem.Graphs(),
		Sessions:  mem.Sessions(),
		Masteries: mem.Masteries(),
		Events:    mem.Events(),
	}

	dec := decompose.New()
	var scorer evaluate.Scorer

	// An LLM provider upgrades decomposition and evaluation; without one the
	// curated topic trees and the heuristic scorer carry the whole loop.
	if cfg, ok := discoverLLMConfig(); ok {
		provider, err := llm.NewProvider(ctx, cfg, mem.Events())
		if err != nil {
			slog.Warn("LLM provider unavailable, using builtin fallbacks", "error", err)
		} else {
			slog.Info("LLM provider configured", "provider", cfg.Provider, "model", provider.ModelID())
			dec = dec.WithBuilder(decompose.NewLLMBuilder(provider, cfg.Timeout))
			scorer = evaluate.NewLLMScorer(provider, cfg.Timeout)
		}
	} else {
		slog.Info("no LLM API key found, using builtin topic trees and heuristic scoring")
	}

	svc := session.NewService(repos, dec, scorer)

	srvCfg := server.DefaultConfig()
	if p, _ := cmd.Flags().GetInt("port"); p > 0 {
		srvCfg.Port = p
	} else if env := os.Getenv("TUTORLOOP_PORT"); env != "" {
		if p, err := strconv.Atoi(env); err == nil && p > 0 {
			srvCfg.Port = p
		}
	}
	if env := os.Getenv("TUTORLOOP_SHUTDOWN_TIMEOUT"); env != "" {
		if d, err := time.ParseDuration(env); err == nil {
			srvCfg.ShutdownTimeout = d
		}
	}

	return server.Run(ctx, srvCfg, server.NewHandlers(svc))
}

// discoverLLMConfig prefers explicit TUTORLOOP_* configuration, then probes
// the standard provider key env vars.
func discoverLLMConfig() (llm.Config, bool) {
	cfg := llm.ConfigFromEnv()
	if cfg.Validate() == nil {
		return cfg, true
	}
	return llm.DiscoverConfig()
}
