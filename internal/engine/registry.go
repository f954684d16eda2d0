package engine

import (
	"sync"
	"time"

	"github.com/wandero-ai/client-simulator/internal/dialogue"
)

// ConversationStatus is one row of the live progress view.
type ConversationStatus struct {
	ConversationID string               `json:"conversation_id"`
	PersonaKey     string               `json:"persona_key"`
	CompanyKey     string               `json:"company_key"`
	Turn           int                  `json:"turn"`
	ClientPhase    dialogue.ClientPhase `json:"client_phase"`
	AgencyPhase    dialogue.AgencyPhase `json:"agency_phase"`
	Interest       float64              `json:"interest"`
	Outcome        dialogue.Outcome     `json:"outcome,omitempty"`
	Running        bool                 `json:"running"`
	StartedAt      time.Time            `json:"started_at"`
}

// Registry tracks every conversation in a run for live status reporting.
// It is updated once per turn, so a single mutex is plenty.
type Registry struct {
	mu    sync.Mutex
	order []string
	byID  map[string]*ConversationStatus
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*ConversationStatus)}
}

// Start registers a conversation as running.
func (r *Registry) Start(id, personaKey, companyKey string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = append(r.order, id)
	r.byID[id] = &ConversationStatus{
		ConversationID: id,
		PersonaKey:     personaKey,
		CompanyKey:     companyKey,
		ClientPhase:    dialogue.ClientPhaseInitial,
		AgencyPhase:    dialogue.AgencyPhaseGreeting,
		Running:        true,
		StartedAt:      time.Now().UTC(),
	}
}

// Update records per-turn progress.
func (r *Registry) Update(id string, u dialogue.PhaseUpdate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return
	}
	s.Turn = u.Turn
	s.ClientPhase = u.ClientPhase
	s.AgencyPhase = u.AgencyPhase
	s.Interest = u.Interest
}

// Finish marks a conversation done with its outcome.
func (r *Registry) Finish(id string, result *dialogue.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return
	}
	s.Turn = result.Turns
	s.ClientPhase = result.ClientPhase
	s.AgencyPhase = result.AgencyPhase
	s.Interest = result.FinalInterest
	s.Outcome = result.Outcome
	s.Running = false
}

// Snapshot returns the statuses in start order.
func (r *Registry) Snapshot() []ConversationStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ConversationStatus, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.byID[id])
	}
	return out
}
