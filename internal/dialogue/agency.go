package dialogue

import (
	"github.com/wandero-ai/client-simulator/internal/pricing"
	"github.com/wandero-ai/client-simulator/internal/profile"
)

// AgencyAction is the closed set of actions the agency side can take.
type AgencyAction int

const (
	AgencyActionNone AgencyAction = iota
	AgencyActionGreet
	AgencyActionRequestInfo
	AgencyActionClarify
	AgencyActionSendProposal
	AgencyActionOfferDiscount
	AgencyActionAnswerQuestions
	AgencyActionConfirmBooking
)

// String names the action for logs and status reporting.
func (a AgencyAction) String() string {
	switch a {
	case AgencyActionGreet:
		return "greet"
	case AgencyActionRequestInfo:
		return "request_info"
	case AgencyActionClarify:
		return "clarify"
	case AgencyActionSendProposal:
		return "send_proposal"
	case AgencyActionOfferDiscount:
		return "offer_discount"
	case AgencyActionAnswerQuestions:
		return "answer_questions"
	case AgencyActionConfirmBooking:
		return "confirm_booking"
	default:
		return "none"
	}
}

// AgencyMachine decides the agency side's next action from what it has
// learned so far and the last client message.
type AgencyMachine struct {
	company *profile.Company
}

// NewAgencyMachine creates an agency machine for one company.
func NewAgencyMachine(c *profile.Company) *AgencyMachine {
	return &AgencyMachine{company: c}
}

// Next picks the agency's action and advances its phase. Extraction from the
// client message has already been applied to s by the orchestrator.
func (m *AgencyMachine) Next(s *AgencyState, last *Message) AgencyAction {
	if s.Ended || s.Phase.Terminal() {
		return AgencyActionNone
	}

	switch s.Phase {
	case AgencyPhaseGreeting:
		s.Phase = AgencyPhaseGatheringInfo
		return AgencyActionGreet

	case AgencyPhaseGatheringInfo:
		if s.Fields.ReadyForProposal() {
			return m.propose(s)
		}
		if s.Fields.MissingCount() <= 1 {
			s.Phase = AgencyPhaseClarifying
			return AgencyActionClarify
		}
		return AgencyActionRequestInfo

	case AgencyPhaseClarifying:
		if s.Fields.ReadyForProposal() {
			return m.propose(s)
		}
		return AgencyActionClarify

	case AgencyPhasePreparing:
		return m.propose(s)

	case AgencyPhaseProposalSent, AgencyPhaseNegotiating:
		if last == nil {
			return AgencyActionAnswerQuestions
		}
		if last.Correction {
			// A corrected detail invalidates the current quote. Reprice and
			// send a revised proposal.
			return m.propose(s)
		}
		if ContainsAcceptance(last.Body) && !ContainsObjection(last.Body) {
			s.Phase = AgencyPhaseBookingConfirmed
			return AgencyActionConfirmBooking
		}
		if ContainsObjection(last.Body) {
			s.Phase = AgencyPhaseNegotiating
			delta := pricing.Negotiate(s.DiscountOffered, m.company.Pricing)
			if delta > 0 {
				s.OfferDiscount(delta, m.company.Pricing.MaxDiscount)
				return AgencyActionOfferDiscount
			}
			// At the discount ceiling there is nothing left to concede.
			return AgencyActionAnswerQuestions
		}
		return AgencyActionAnswerQuestions
	}

	return AgencyActionNone
}

// propose prices a fresh package and moves to proposal_sent. The preparing
// phase is transient; it is only observable when a turn is interrupted.
func (m *AgencyMachine) propose(s *AgencyState) AgencyAction {
	s.Phase = AgencyPhasePreparing
	s.ProposalVersion++
	s.Proposal = pricing.Quote(m.company, s.Facts, s.ProposalVersion)
	s.Phase = AgencyPhaseProposalSent
	return AgencyActionSendProposal
}
