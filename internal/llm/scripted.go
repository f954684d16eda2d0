package llm

import (
	"context"
	"strings"
	"time"
)

// ScriptedClient is an offline generation client used for dry runs and
// tests. It produces deterministic text derived from the prompt so the
// extractor and state machines still have something to chew on.
type ScriptedClient struct{}

// NewScriptedClient creates a scripted client.
func NewScriptedClient() *ScriptedClient {
	return &ScriptedClient{}
}

// Name returns the provider name.
func (c *ScriptedClient) Name() string {
	return "scripted"
}

// Complete echoes the structured facts embedded in the prompt. Prompts built
// by the prompt package carry a "Facts:" block listing the concrete values
// the generated email must mention; reproducing that block verbatim keeps
// dry runs extractable.
func (c *ScriptedClient) Complete(_ context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	start := time.Now()

	var prompt string
	if len(req.Messages) > 0 {
		prompt = req.Messages[len(req.Messages)-1].Content
	}

	content := "Hello, thank you for your message."
	if idx := strings.Index(prompt, "Facts:"); idx >= 0 {
		content = strings.TrimSpace(prompt[idx+len("Facts:"):])
	}

	return &CompletionResponse{
		Content:    content,
		Model:      "scripted",
		StopReason: "end_turn",
		LatencyMs:  time.Since(start).Milliseconds(),
	}, nil
}
