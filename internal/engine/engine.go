// Package engine fans simulated conversations out over a bounded worker
// pool and collects exactly one result per requested persona/company pair.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/wandero-ai/client-simulator/internal/dialogue"
	"github.com/wandero-ai/client-simulator/internal/events"
	"github.com/wandero-ai/client-simulator/internal/gateway"
	"github.com/wandero-ai/client-simulator/internal/profile"
	"github.com/wandero-ai/client-simulator/pkg/logger"
	"github.com/wandero-ai/client-simulator/pkg/metrics"
)

// Pair names one conversation to simulate.
type Pair struct {
	PersonaKey string
	CompanyKey string
}

// Config assembles the shared machinery for a run.
type Config struct {
	Store    *profile.Store
	Gateway  *gateway.Gateway
	Tunables dialogue.Tunables
	// Workers bounds how many conversations run at once.
	Workers  int
	MaxTurns int
	// Deadline stops new conversations from starting once elapsed; running
	// ones are left to finish. Zero means no deadline.
	Deadline time.Duration
	// Seed makes a run reproducible when the gateway is deterministic.
	// Zero seeds from the clock.
	Seed      int64
	Sleeper   gateway.Sleeper
	Publisher events.Publisher
	Registry  *Registry
	Logger    *logger.Logger
}

// Engine runs batches of conversations.
type Engine struct {
	cfg    Config
	log    *logger.Logger
	tracer trace.Tracer
}

// New creates an engine. Workers defaults to 3, matching the pacing the
// generation providers tolerate.
func New(cfg Config) *Engine {
	if cfg.Workers <= 0 {
		cfg.Workers = 3
	}
	if cfg.Publisher == nil {
		cfg.Publisher = events.Nop{}
	}
	if cfg.Registry == nil {
		cfg.Registry = NewRegistry()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Global()
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return &Engine{
		cfg:    cfg,
		log:    cfg.Logger,
		tracer: otel.Tracer("client-simulator/engine"),
	}
}

// Registry exposes the live status registry for the HTTP status surface.
func (e *Engine) Registry() *Registry {
	return e.cfg.Registry
}

// Run simulates every pair and returns results in pair order. Pairs that
// never start, because the run deadline passed or their profiles cannot be
// resolved, still yield a result marked incomplete.
func (e *Engine) Run(ctx context.Context, pairs []Pair) []*dialogue.Result {
	results := make([]*dialogue.Result, len(pairs))

	var deadline time.Time
	if e.cfg.Deadline > 0 {
		deadline = time.Now().Add(e.cfg.Deadline)
	}

	sem := make(chan struct{}, e.cfg.Workers)
	var wg sync.WaitGroup

	for i, pair := range pairs {
		if !deadline.IsZero() && time.Now().After(deadline) {
			results[i] = unstartedResult(pair, "run deadline exceeded before start")
			continue
		}
		if ctx.Err() != nil {
			results[i] = unstartedResult(pair, ctx.Err().Error())
			continue
		}

		wg.Add(1)
		go func(i int, pair Pair) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			// The wait for a worker slot can outlast the deadline, so the
			// check repeats here; a pair queued behind busy workers must not
			// start late.
			if !deadline.IsZero() && time.Now().After(deadline) {
				results[i] = unstartedResult(pair, "run deadline exceeded before start")
				return
			}
			if ctx.Err() != nil {
				results[i] = unstartedResult(pair, ctx.Err().Error())
				return
			}
			results[i] = e.runOne(ctx, pair, e.cfg.Seed+int64(i))
		}(i, pair)
	}

	wg.Wait()
	return results
}

// runOne resolves the pair and plays a single conversation.
func (e *Engine) runOne(ctx context.Context, pair Pair, seed int64) *dialogue.Result {
	persona, err := e.cfg.Store.Persona(pair.PersonaKey)
	if err != nil {
		return unstartedResult(pair, err.Error())
	}
	company, err := e.cfg.Store.Company(pair.CompanyKey)
	if err != nil {
		return unstartedResult(pair, err.Error())
	}

	ctx, span := e.tracer.Start(ctx, "conversation",
		trace.WithAttributes(
			attribute.String("persona", pair.PersonaKey),
			attribute.String("company", pair.CompanyKey),
		),
	)
	defer span.End()

	metrics.ConversationsActive.Inc()
	defer metrics.ConversationsActive.Dec()

	orchCfg := dialogue.Config{
		Persona:  persona,
		Company:  company,
		Gateway:  e.cfg.Gateway,
		Tunables: e.cfg.Tunables,
		MaxTurns: e.cfg.MaxTurns,
		Sleeper:  e.cfg.Sleeper,
		Rng:      rand.New(rand.NewSource(seed)),
		Logger:   e.log,
	}

	var orch *dialogue.Orchestrator
	orchCfg.OnPhase = func(u dialogue.PhaseUpdate) {
		e.cfg.Registry.Update(orch.ID(), u)
	}
	orch = dialogue.New(orchCfg)

	e.cfg.Registry.Start(orch.ID(), pair.PersonaKey, pair.CompanyKey)
	result := orch.Run(ctx)
	e.cfg.Registry.Finish(result.ConversationID, result)

	span.SetAttributes(
		attribute.String("outcome", string(result.Outcome)),
		attribute.Int("turns", result.Turns),
	)
	metrics.RecordConversation(pair.PersonaKey, pair.CompanyKey, string(result.Outcome),
		result.Duration().Seconds(), result.Turns)

	if err := e.cfg.Publisher.PublishResult(ctx, result); err != nil {
		e.log.Warn("failed to publish result",
			zap.String("conversation_id", result.ConversationID), zap.Error(err))
	}

	return result
}

// unstartedResult fabricates the mandatory result for a pair that never ran.
func unstartedResult(pair Pair, reason string) *dialogue.Result {
	now := time.Now().UTC()
	return &dialogue.Result{
		ConversationID: uuid.Must(uuid.NewV7()).String(),
		PersonaKey:     pair.PersonaKey,
		CompanyKey:     pair.CompanyKey,
		StartedAt:      now,
		EndedAt:        now,
		ClientPhase:    dialogue.ClientPhaseInitial,
		AgencyPhase:    dialogue.AgencyPhaseGreeting,
		Outcome:        dialogue.OutcomeIncomplete,
		Errors:         []string{fmt.Sprintf("not started: %s", reason)},
	}
}
