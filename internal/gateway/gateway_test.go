package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wandero-ai/client-simulator/internal/llm"
	"github.com/wandero-ai/client-simulator/pkg/logger"
)

// fakeClient returns canned responses or errors in sequence.
type fakeClient struct {
	calls     int
	responses []fakeResponse
}

type fakeResponse struct {
	content string
	err     error
}

func (f *fakeClient) Complete(_ context.Context, _ *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	i := f.calls
	f.calls++
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	r := f.responses[i]
	if r.err != nil {
		return nil, r.err
	}
	return &llm.CompletionResponse{Content: r.content}, nil
}

func (f *fakeClient) Name() string { return "fake" }

func newTestGateway(client llm.Client) *Gateway {
	return New(client, Pacing{}, NopSleeper{}, logger.NewNop())
}

func TestRealizeSuccess(t *testing.T) {
	client := &fakeClient{responses: []fakeResponse{{content: "  hello there  "}}}
	g := newTestGateway(client)

	got := g.Realize(context.Background(), "prompt", "fallback")
	assert.Equal(t, "hello there", got)
	assert.Equal(t, 1, client.calls)
}

func TestRealizeRetriesOnceAfterRateLimit(t *testing.T) {
	client := &fakeClient{responses: []fakeResponse{
		{err: errors.New("429 Too Many Requests")},
		{content: "second try"},
	}}
	g := newTestGateway(client)

	got := g.Realize(context.Background(), "prompt", "fallback")
	assert.Equal(t, "second try", got)
	assert.Equal(t, 2, client.calls)
}

func TestRealizeFallbackAfterFailedRetry(t *testing.T) {
	client := &fakeClient{responses: []fakeResponse{
		{err: errors.New("rate limit exceeded")},
		{err: errors.New("quota exhausted")},
	}}
	g := newTestGateway(client)

	got := g.Realize(context.Background(), "prompt", "canned reply")
	assert.Equal(t, "canned reply", got)
	// Exactly one retry, never more.
	assert.Equal(t, 2, client.calls)
}

func TestRealizeNoRetryOnOtherErrors(t *testing.T) {
	client := &fakeClient{responses: []fakeResponse{
		{err: errors.New("connection refused")},
	}}
	g := newTestGateway(client)

	got := g.Realize(context.Background(), "prompt", "canned reply")
	assert.Equal(t, "canned reply", got)
	assert.Equal(t, 1, client.calls)
}

// recordingSleeper captures every sleep requested of it.
type recordingSleeper struct{ slept []time.Duration }

func (s *recordingSleeper) Sleep(_ context.Context, d time.Duration) {
	s.slept = append(s.slept, d)
}

func TestRealizePacesRetrySuccessLikeFirstSuccess(t *testing.T) {
	client := &fakeClient{responses: []fakeResponse{
		{err: errors.New("429 Too Many Requests")},
		{content: "second try"},
	}}
	sleeper := &recordingSleeper{}
	pacing := Pacing{
		PreCallDelay:      1 * time.Second,
		PostCallDelay:     2 * time.Second,
		RateLimitCooldown: 3 * time.Second,
	}
	g := New(client, pacing, sleeper, logger.NewNop())

	got := g.Realize(context.Background(), "prompt", "fallback")
	assert.Equal(t, "second try", got)
	// Pre-call wait, cooldown, then the post-call wait that every success
	// gets, retried or not.
	assert.Equal(t, []time.Duration{1 * time.Second, 3 * time.Second, 2 * time.Second}, sleeper.slept)
}

func TestIsRateLimited(t *testing.T) {
	assert.True(t, isRateLimited(errors.New("HTTP 429")))
	assert.True(t, isRateLimited(errors.New("insufficient quota")))
	assert.True(t, isRateLimited(errors.New("Rate Limit hit")))
	assert.True(t, isRateLimited(errors.New("too many requests")))
	assert.False(t, isRateLimited(errors.New("bad gateway")))
}
