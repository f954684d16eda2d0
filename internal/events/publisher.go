// Package events publishes finished conversation records to NATS JetStream
// so downstream tooling can consume simulation output as it is produced.
package events

import (
	"context"

	"github.com/wandero-ai/client-simulator/internal/dialogue"
)

// Publisher delivers conversation results to an external sink.
type Publisher interface {
	PublishResult(ctx context.Context, result *dialogue.Result) error
	Close()
}

// Nop discards everything. Used when no NATS URL is configured.
type Nop struct{}

func (Nop) PublishResult(context.Context, *dialogue.Result) error { return nil }
func (Nop) Close()                                                {}
