package dialogue

import (
	"math/rand"

	"github.com/wandero-ai/client-simulator/internal/extract"
	"github.com/wandero-ai/client-simulator/internal/profile"
)

// ClientAction is the closed set of actions the client side can take.
type ClientAction int

const (
	ClientActionNone ClientAction = iota
	ClientActionInquire
	ClientActionProvideDetails
	ClientActionSendCorrection
	ClientActionNegotiate
	ClientActionAccept
	ClientActionDecline
)

// String names the action for logs and status reporting.
func (a ClientAction) String() string {
	switch a {
	case ClientActionInquire:
		return "inquire"
	case ClientActionProvideDetails:
		return "provide_details"
	case ClientActionSendCorrection:
		return "send_correction"
	case ClientActionNegotiate:
		return "negotiate"
	case ClientActionAccept:
		return "accept"
	case ClientActionDecline:
		return "decline"
	default:
		return "none"
	}
}

// ClientMachine decides the traveler side's next action from its phase,
// interest level, and the last agency message.
type ClientMachine struct {
	persona  *profile.Persona
	tunables Tunables
	rng      *rand.Rand
}

// NewClientMachine creates a client machine. The rand source is injected so
// the forgotten-detail branch is reproducible.
func NewClientMachine(p *profile.Persona, t Tunables, rng *rand.Rand) *ClientMachine {
	return &ClientMachine{persona: p, tunables: t, rng: rng}
}

// Next picks the client's action and advances its phase. last is the most
// recent agency message, nil on the opening turn.
func (m *ClientMachine) Next(s *ClientState, last *Message) ClientAction {
	if s.Ended || s.Phase.Terminal() {
		return ClientActionNone
	}

	if last != nil {
		m.observe(s, last)
	}

	switch s.Phase {
	case ClientPhaseInitial:
		s.Phase = ClientPhaseExploring
		return ClientActionInquire

	case ClientPhaseExploring:
		if last != nil && LooksLikeProposal(last.Body) {
			s.Phase = ClientPhaseInterested
			s.RaiseInterest(m.tunables.InterestBoost, m.tunables.InterestCap)
			return m.decide(s)
		}
		if m.correctionDue(s) {
			return ClientActionSendCorrection
		}
		return ClientActionProvideDetails

	case ClientPhaseInterested, ClientPhaseNegotiating:
		if m.correctionDue(s) {
			return ClientActionSendCorrection
		}
		return m.decide(s)
	}

	return ClientActionNone
}

// observe folds the received message into interest. A quote over budget is
// a price shock and decays interest; otherwise sentiment nudges it.
func (m *ClientMachine) observe(s *ClientState, msg *Message) {
	if price := QuotedPrice(msg.Body); price > 0 {
		s.LastQuotedPrice = price
		if price > m.persona.BudgetMax {
			s.ScaleInterest(m.tunables.PriceShockDecay)
			return
		}
	}
	if s.Phase == ClientPhaseInterested || s.Phase == ClientPhaseNegotiating {
		s.RaiseInterest(SentimentScore(msg.Body)*m.tunables.SentimentWeight, m.tunables.InterestCap)
	}
}

// correctionDue rolls the forgotten-detail branch: only once a minimum turn
// count has elapsed, only while something is still withheld.
func (m *ClientMachine) correctionDue(s *ClientState) bool {
	return len(s.Withheld) > 0 &&
		s.TurnCount >= m.tunables.MinTurnsBeforeCorrection &&
		m.rng.Float64() < m.tunables.ForgetProbability
}

// decide compares interest against the decision thresholds.
func (m *ClientMachine) decide(s *ClientState) ClientAction {
	switch {
	case s.Interest < m.tunables.DeclineThreshold:
		s.Phase = ClientPhaseDone
		return ClientActionDecline
	case s.Interest > m.tunables.AcceptThreshold && s.DiscountSeen > 0:
		s.Phase = ClientPhaseBooking
		return ClientActionAccept
	default:
		s.Phase = ClientPhaseNegotiating
		return ClientActionNegotiate
	}
}

// PopWithheld removes and returns the next withheld field for a correction
// message. Returns false when nothing is withheld.
func (s *ClientState) PopWithheld() (extract.Field, bool) {
	if len(s.Withheld) == 0 {
		return "", false
	}
	f := s.Withheld[0]
	s.Withheld = s.Withheld[1:]
	return f, true
}
