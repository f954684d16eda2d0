package dialogue

import (
	"github.com/wandero-ai/client-simulator/internal/extract"
	"github.com/wandero-ai/client-simulator/internal/pricing"
	"github.com/wandero-ai/client-simulator/internal/profile"
)

// ClientPhase is a state in the client side's machine.
type ClientPhase string

const (
	ClientPhaseInitial     ClientPhase = "initial"
	ClientPhaseExploring   ClientPhase = "exploring"
	ClientPhaseInterested  ClientPhase = "interested"
	ClientPhaseNegotiating ClientPhase = "negotiating"
	ClientPhaseBooking     ClientPhase = "booking"
	ClientPhaseDone        ClientPhase = "done"
	ClientPhaseAbandoned   ClientPhase = "abandoned"
)

// Terminal reports whether no further client actions are taken.
func (p ClientPhase) Terminal() bool {
	return p == ClientPhaseBooking || p == ClientPhaseDone || p == ClientPhaseAbandoned
}

// AgencyPhase is a state in the agency side's machine.
type AgencyPhase string

const (
	AgencyPhaseGreeting         AgencyPhase = "greeting"
	AgencyPhaseGatheringInfo    AgencyPhase = "gathering_info"
	AgencyPhaseClarifying       AgencyPhase = "clarifying_details"
	AgencyPhasePreparing        AgencyPhase = "preparing_proposal"
	AgencyPhaseProposalSent     AgencyPhase = "proposal_sent"
	AgencyPhaseNegotiating      AgencyPhase = "negotiating"
	AgencyPhaseBookingConfirmed AgencyPhase = "booking_confirmed"
)

// Terminal reports whether no further agency actions are taken.
func (p AgencyPhase) Terminal() bool {
	return p == AgencyPhaseBookingConfirmed
}

// Tunables are the named behavioral knobs of the simulation. They exist as
// explicit parameters so tests can force any branch deterministically.
type Tunables struct {
	// InterestBoost is added to client interest when a proposal first
	// arrives.
	InterestBoost float64
	// InterestCap bounds proposal-driven interest growth.
	InterestCap float64
	// SentimentWeight scales how much a received message's sentiment moves
	// client interest.
	SentimentWeight float64
	// PriceShockDecay multiplies interest when a quote exceeds the
	// persona's budget.
	PriceShockDecay float64
	// DeclineThreshold and AcceptThreshold bound the client decision.
	DeclineThreshold float64
	AcceptThreshold  float64
	// ForgetProbability is the chance per eligible turn that the client
	// sends a correction reintroducing a withheld detail.
	ForgetProbability float64
	// MinTurnsBeforeCorrection gates corrections until the conversation has
	// warmed up.
	MinTurnsBeforeCorrection int
	// TypoProbability is the chance a client email gets a realistic typo.
	TypoProbability float64
	// LowInterestThreshold and LowInterestTurns define sustained-low-
	// interest termination.
	LowInterestThreshold float64
	LowInterestTurns     int
}

// DefaultTunables returns the standard simulation knobs.
func DefaultTunables() Tunables {
	return Tunables{
		InterestBoost:            0.2,
		InterestCap:              0.9,
		SentimentWeight:          0.2,
		PriceShockDecay:          0.7,
		DeclineThreshold:         0.3,
		AcceptThreshold:          0.7,
		ForgetProbability:        0.6,
		MinTurnsBeforeCorrection: 2,
		TypoProbability:          0.3,
		LowInterestThreshold:     0.2,
		LowInterestTurns:         3,
	}
}

// ClientState is the mutable per-conversation state of the traveler side.
// It is owned exclusively by one orchestrator.
type ClientState struct {
	Phase    ClientPhase
	Interest float64
	// Shared tracks which fields the client has disclosed so far.
	Shared extract.FieldSet
	// Withheld are fields deliberately left out of earlier messages,
	// pending a correction.
	Withheld []extract.Field
	// Concerns are consumed as the agency addresses them.
	Concerns        []string
	DiscountSeen    float64
	LastQuotedPrice int
	TurnCount       int
	Ended           bool
}

// NewClientState initializes the client side from a persona. The withheld
// list is seeded from the persona's forgetfulness quirk.
func NewClientState(p *profile.Persona) *ClientState {
	s := &ClientState{
		Phase:    ClientPhaseInitial,
		Interest: 0.5,
		Shared:   extract.NewFieldSet(),
		Concerns: append([]string(nil), p.Concerns...),
	}
	if p.Quirks.ForgetsDetails {
		if len(p.ChildrenAges) > 0 {
			s.Withheld = append(s.Withheld, extract.FieldAges)
		}
		if len(p.SpecialRequirements) > 0 {
			s.Withheld = append(s.Withheld, extract.FieldSpecialRequirements)
		}
	}
	return s
}

// RaiseInterest adds delta, capped at the configured ceiling and clamped
// to [0, 1].
func (s *ClientState) RaiseInterest(delta, cap float64) {
	s.Interest += delta
	if s.Interest > cap {
		s.Interest = cap
	}
	s.Interest = clamp01(s.Interest)
}

// ScaleInterest multiplies interest by factor, clamped to [0, 1].
func (s *ClientState) ScaleInterest(factor float64) {
	s.Interest = clamp01(s.Interest * factor)
}

// AgencyState is the mutable per-conversation state of the agency side.
// It is owned exclusively by one orchestrator.
type AgencyState struct {
	Phase           AgencyPhase
	Fields          extract.FieldSet
	Facts           extract.Facts
	Proposal        *pricing.Proposal
	ProposalVersion int
	DiscountOffered float64
	TurnCount       int
	Ended           bool
}

// NewAgencyState initializes the agency side with every field missing.
func NewAgencyState() *AgencyState {
	return &AgencyState{
		Phase:  AgencyPhaseGreeting,
		Fields: extract.NewFieldSet(),
	}
}

// OfferDiscount raises the offered discount by delta, clamped to the
// company maximum.
func (s *AgencyState) OfferDiscount(delta, max float64) {
	s.DiscountOffered += delta
	if s.DiscountOffered > max {
		s.DiscountOffered = max
	}
	if s.DiscountOffered < 0 {
		s.DiscountOffered = 0
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
