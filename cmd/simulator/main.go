// Package main is the entry point for the conversation simulator.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wandero-ai/client-simulator/internal/config"
	"github.com/wandero-ai/client-simulator/internal/dialogue"
	"github.com/wandero-ai/client-simulator/internal/engine"
	"github.com/wandero-ai/client-simulator/internal/events"
	"github.com/wandero-ai/client-simulator/internal/gateway"
	"github.com/wandero-ai/client-simulator/internal/llm"
	"github.com/wandero-ai/client-simulator/internal/profile"
	"github.com/wandero-ai/client-simulator/internal/report"
	"github.com/wandero-ai/client-simulator/internal/status"
	"github.com/wandero-ai/client-simulator/pkg/logger"
	"github.com/wandero-ai/client-simulator/pkg/tracing"
)

var (
	flagPersonas  []string
	flagCompanies []string
	flagProvider  string
	flagWorkers   int
	flagMaxTurns  int
	flagDeadline  time.Duration
	flagOutput    string
	flagSeed      int64
	flagDryRun    bool
)

var rootCmd = &cobra.Command{
	Use:   "simulator",
	Short: "Simulates traveler/agency email negotiations for agent stress testing",
	Long: `simulator plays multi-turn email negotiations between simulated traveler
personas and travel agency profiles, concurrently, and reports the outcomes.`,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringSliceVar(&flagPersonas, "personas", nil, "persona keys to simulate (default all)")
	rootCmd.Flags().StringSliceVar(&flagCompanies, "companies", nil, "company keys to simulate (default all)")
	rootCmd.Flags().StringVar(&flagProvider, "provider", "", "generation provider: anthropic, openai, or scripted")
	rootCmd.Flags().IntVar(&flagWorkers, "workers", 0, "max concurrent conversations")
	rootCmd.Flags().IntVar(&flagMaxTurns, "max-turns", 0, "max turns per conversation")
	rootCmd.Flags().DurationVar(&flagDeadline, "deadline", 0, "stop starting new conversations after this long")
	rootCmd.Flags().StringVar(&flagOutput, "output", "", "path for the JSON results file")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "random seed for reproducible runs")
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "use the scripted provider, no API calls")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	applyFlags(cmd, cfg)

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "client-simulator", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(context.Background(), tp)
		}
	}

	store := profile.NewStore()
	if cfg.ProfileFile != "" {
		if err := store.LoadFile(cfg.ProfileFile); err != nil {
			return fmt.Errorf("failed to load profiles: %w", err)
		}
	}

	client, err := buildClient(cfg, log)
	if err != nil {
		return err
	}

	gw := gateway.New(client, gateway.Pacing{
		PreCallDelay:      cfg.PreCallDelay,
		PostCallDelay:     cfg.PostCallDelay,
		RateLimitCooldown: cfg.RateLimitCooldown,
	}, nil, log)

	var publisher events.Publisher = events.Nop{}
	if cfg.NATSEnabled {
		natsPub, err := events.Connect(ctx, events.Config{
			URL:      cfg.NATSURL,
			CAFile:   cfg.NATSCAFile,
			CertFile: cfg.NATSCertFile,
			KeyFile:  cfg.NATSKeyFile,
			Token:    cfg.NATSToken,
		}, log)
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		defer natsPub.Close()
		publisher = natsPub
	}

	eng := engine.New(engine.Config{
		Store:     store,
		Gateway:   gw,
		Tunables:  dialogue.DefaultTunables(),
		Workers:   cfg.Workers,
		MaxTurns:  cfg.MaxTurns,
		Deadline:  cfg.RunDeadline,
		Seed:      cfg.Seed,
		Publisher: publisher,
		Logger:    log,
	})

	var statusSrv *status.Server
	if cfg.StatusEnabled {
		statusSrv = status.NewServer(cfg.StatusAddr, eng.Registry(), log)
		statusSrv.Start()
	}

	pairs := buildPairs(store, flagPersonas, flagCompanies)
	if len(pairs) == 0 {
		return fmt.Errorf("no persona/company pairs to simulate")
	}

	log.Info("starting simulation run",
		zap.Int("pairs", len(pairs)),
		zap.Int("workers", cfg.Workers),
		zap.String("provider", client.Name()),
	)

	monitorDone := make(chan struct{})
	go monitorProgress(ctx, eng.Registry(), len(pairs), log, monitorDone)

	results := eng.Run(ctx, pairs)
	close(monitorDone)

	summary := report.Build(results)
	fmt.Print(summary.Text())
	if err := report.WriteJSON(cfg.OutputPath, results); err != nil {
		return err
	}
	log.Info("results written", zap.String("path", cfg.OutputPath))

	if statusSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := statusSrv.Shutdown(shutdownCtx); err != nil {
			log.Warn("status server shutdown", zap.Error(err))
		}
	}
	return nil
}

// applyFlags overrides environment configuration with explicit flags.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("workers") {
		cfg.Workers = flagWorkers
	}
	if cmd.Flags().Changed("max-turns") {
		cfg.MaxTurns = flagMaxTurns
	}
	if cmd.Flags().Changed("deadline") {
		cfg.RunDeadline = flagDeadline
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputPath = flagOutput
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = flagSeed
	}
	if cmd.Flags().Changed("provider") {
		cfg.DefaultLLM = flagProvider
	}
	if flagDryRun {
		cfg.DefaultLLM = string(llm.ProviderScripted)
	}
}

// buildClient picks the generation provider: the configured one when its key
// is present, otherwise the scripted provider so runs work offline.
func buildClient(cfg *config.Config, log *logger.Logger) (llm.Client, error) {
	provider := llm.Provider(strings.ToLower(cfg.DefaultLLM))
	switch provider {
	case llm.ProviderScripted:
		return llm.NewScriptedClient(), nil
	case llm.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			log.Warn("OPENAI_API_KEY not set, falling back to scripted provider")
			return llm.NewScriptedClient(), nil
		}
		return llm.NewClient(provider, cfg.OpenAIAPIKey)
	default:
		if cfg.AnthropicAPIKey == "" {
			log.Warn("ANTHROPIC_API_KEY not set, falling back to scripted provider")
			return llm.NewScriptedClient(), nil
		}
		return llm.NewClient(llm.ProviderAnthropic, cfg.AnthropicAPIKey)
	}
}

// monitorProgress logs a progress line every 15 seconds while the run lasts.
func monitorProgress(ctx context.Context, reg *engine.Registry, pairs int, log *logger.Logger, done <-chan struct{}) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			var running, finished int
			for _, s := range reg.Snapshot() {
				if s.Running {
					running++
				} else {
					finished++
				}
			}
			log.Info("simulation progress",
				zap.Int("running", running),
				zap.Int("finished", finished),
				zap.Int("pairs", pairs),
			)
		}
	}
}

// buildPairs expands the persona and company selections into the cross
// product of conversations to run.
func buildPairs(store *profile.Store, personas, companies []string) []engine.Pair {
	if len(personas) == 0 {
		personas = store.PersonaKeys()
	}
	if len(companies) == 0 {
		companies = store.CompanyKeys()
	}
	pairs := make([]engine.Pair, 0, len(personas)*len(companies))
	for _, p := range personas {
		for _, c := range companies {
			pairs = append(pairs, engine.Pair{PersonaKey: p, CompanyKey: c})
		}
	}
	return pairs
}
