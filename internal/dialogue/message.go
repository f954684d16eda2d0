// Package dialogue implements the per-side phase state machines and the
// orchestrator that drives one simulated email negotiation.
package dialogue

import (
	"time"
)

// Side identifies which party produced a message.
type Side string

const (
	SideClient Side = "client"
	SideAgency Side = "agency"
)

// Message is one email in a conversation. Messages are immutable once
// created and the message log is append-only.
type Message struct {
	ID         string    `json:"id"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	Sender     Side      `json:"sender"`
	SenderName string    `json:"sender_name"`
	Timestamp  time.Time `json:"timestamp"`
	Sentiment  float64   `json:"sentiment"`
	// Correction marks a follow-up sent out of normal alternation, where a
	// side reintroduces a detail it previously withheld.
	Correction bool `json:"correction,omitempty"`
}
