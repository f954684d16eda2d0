// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ConversationsTotal tracks completed conversations by outcome.
	ConversationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sim_conversations_total",
			Help: "Total completed conversations",
		},
		[]string{"persona", "company", "outcome"},
	)

	// ConversationsActive tracks currently running conversations.
	ConversationsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sim_conversations_active",
			Help: "Number of conversations currently running",
		},
	)

	// ConversationDuration tracks wall-clock conversation duration.
	ConversationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sim_conversation_duration_seconds",
			Help:    "Conversation duration in seconds",
			Buckets: []float64{1, 2, 5, 10, 20, 30, 60, 120, 300, 600},
		},
		[]string{"outcome"},
	)

	// ConversationTurns tracks the number of turns per conversation.
	ConversationTurns = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sim_conversation_turns",
			Help:    "Turns taken per conversation",
			Buckets: []float64{2, 4, 6, 8, 10, 12, 16, 20, 30},
		},
	)

	// GenerationCalls tracks calls into the text generation capability.
	GenerationCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sim_generation_calls_total",
			Help: "Total text generation calls",
		},
		[]string{"provider", "status"},
	)

	// GenerationRetries tracks rate-limit retries performed by the gateway.
	GenerationRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sim_generation_retries_total",
			Help: "Total generation retries after rate limiting",
		},
	)

	// GenerationFallbacks tracks canned-text fallbacks served by the gateway.
	GenerationFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sim_generation_fallbacks_total",
			Help: "Total canned fallback responses served",
		},
	)

	// GenerationLatency tracks generation call latency.
	GenerationLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sim_generation_latency_seconds",
			Help:    "Text generation latency in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30},
		},
		[]string{"provider"},
	)

	// MessagesTotal tracks messages produced, by side.
	MessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sim_messages_total",
			Help: "Total messages produced by simulated parties",
		},
		[]string{"side"},
	)

	// ProposalsTotal tracks proposals priced by the agency side.
	ProposalsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sim_proposals_total",
			Help: "Total proposals generated",
		},
	)
)

// RecordGeneration records metrics for one generation call.
func RecordGeneration(provider, status string, seconds float64) {
	GenerationCalls.WithLabelValues(provider, status).Inc()
	GenerationLatency.WithLabelValues(provider).Observe(seconds)
}

// RecordConversation records metrics for one completed conversation.
func RecordConversation(persona, company, outcome string, seconds float64, turns int) {
	ConversationsTotal.WithLabelValues(persona, company, outcome).Inc()
	ConversationDuration.WithLabelValues(outcome).Observe(seconds)
	ConversationTurns.Observe(float64(turns))
}
