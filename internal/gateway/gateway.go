// Package gateway wraps the external text generation capability with
// pacing, rate-limit classification, a single bounded retry, and canned
// fallback text. Failures never propagate past this package.
package gateway

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wandero-ai/client-simulator/internal/llm"
	"github.com/wandero-ai/client-simulator/pkg/logger"
	"github.com/wandero-ai/client-simulator/pkg/metrics"
)

// Pacing holds the delays applied around generation calls.
type Pacing struct {
	// PreCallDelay is waited before every call, simulating compose time.
	PreCallDelay time.Duration
	// PostCallDelay is waited after a successful call.
	PostCallDelay time.Duration
	// RateLimitCooldown is waited before the single retry after throttling.
	RateLimitCooldown time.Duration
}

// DefaultPacing mirrors the cadence used against live providers.
func DefaultPacing() Pacing {
	return Pacing{
		PreCallDelay:      3 * time.Second,
		PostCallDelay:     1 * time.Second,
		RateLimitCooldown: 30 * time.Second,
	}
}

// Gateway realizes prompts as text. It owns all failure handling for the
// generation capability.
type Gateway struct {
	client  llm.Client
	pacing  Pacing
	sleeper Sleeper
	logger  *logger.Logger
}

// New creates a gateway around the given generation client.
func New(client llm.Client, pacing Pacing, sleeper Sleeper, log *logger.Logger) *Gateway {
	if sleeper == nil {
		sleeper = RealSleeper{}
	}
	return &Gateway{
		client:  client,
		pacing:  pacing,
		sleeper: sleeper,
		logger:  log,
	}
}

// Realize turns a prompt into text. On a rate-limit failure it waits out the
// cooldown and retries exactly once; any other failure, or a failed retry,
// yields the caller-supplied fallback text. Realize never returns an error.
func (g *Gateway) Realize(ctx context.Context, prompt, fallback string) string {
	g.sleeper.Sleep(ctx, g.pacing.PreCallDelay)

	text, err := g.complete(ctx, prompt)
	if err == nil {
		g.sleeper.Sleep(ctx, g.pacing.PostCallDelay)
		return text
	}

	if isRateLimited(err) {
		g.logger.Warn("generation rate limited, cooling down before retry",
			zap.Duration("cooldown", g.pacing.RateLimitCooldown),
			zap.Error(err),
		)
		metrics.GenerationRetries.Inc()
		g.sleeper.Sleep(ctx, g.pacing.RateLimitCooldown)

		text, retryErr := g.complete(ctx, prompt)
		if retryErr == nil {
			g.sleeper.Sleep(ctx, g.pacing.PostCallDelay)
			return text
		}
		g.logger.Warn("generation retry failed, using fallback", zap.Error(retryErr))
	} else {
		g.logger.Warn("generation failed, using fallback", zap.Error(err))
	}

	metrics.GenerationFallbacks.Inc()
	return fallback
}

func (g *Gateway) complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := g.client.Complete(ctx, &llm.CompletionRequest{
		Messages:    []llm.ChatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.7,
	})
	if err != nil {
		metrics.RecordGeneration(g.client.Name(), "error", time.Since(start).Seconds())
		return "", err
	}
	metrics.RecordGeneration(g.client.Name(), "success", time.Since(start).Seconds())
	return strings.TrimSpace(resp.Content), nil
}

// isRateLimited classifies provider errors that indicate throttling or
// quota exhaustion.
func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "rate_limit") ||
		strings.Contains(msg, "too many requests")
}
