package dialogue

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandero-ai/client-simulator/internal/extract"
	"github.com/wandero-ai/client-simulator/internal/pricing"
	"github.com/wandero-ai/client-simulator/internal/profile"
)

func testPersona() *profile.Persona {
	return &profile.Persona{
		Key:                 "test_family",
		Name:                "Test Family",
		GroupSize:           4,
		ChildrenAges:        []int{12, 8},
		BudgetMin:           4000,
		BudgetMax:           6000,
		TravelDates:         "July 15-22, 2024",
		SpecialRequirements: []string{"nut allergy"},
		Quirks:              profile.Quirks{ForgetsDetails: true},
	}
}

func testMachineCompany() *profile.Company {
	return &profile.Company{
		Key:       "test_tours",
		Name:      "Test Tours",
		AgentName: "Ana",
		Pricing: profile.PricingRules{
			BaseRatePerPersonPerDay: 150,
			DurationDays:            7,
			ChildDiscount:           0.3,
			ChildAgeThreshold:       12,
			MaxDiscount:             0.10,
		},
	}
}

func agencyMsg(body string) *Message {
	return &Message{Sender: SideAgency, Body: body}
}

func forcedTunables(forget float64) Tunables {
	t := DefaultTunables()
	t.ForgetProbability = forget
	t.TypoProbability = 0
	return t
}

func TestClientOpensWithInquiry(t *testing.T) {
	m := NewClientMachine(testPersona(), forcedTunables(0), rand.New(rand.NewSource(1)))
	s := NewClientState(testPersona())

	action := m.Next(s, nil)
	assert.Equal(t, ClientActionInquire, action)
	assert.Equal(t, ClientPhaseExploring, s.Phase)
}

func TestClientProvidesDetailsWhileExploring(t *testing.T) {
	m := NewClientMachine(testPersona(), forcedTunables(0), rand.New(rand.NewSource(1)))
	s := NewClientState(testPersona())
	s.Phase = ClientPhaseExploring
	s.TurnCount = 5

	action := m.Next(s, agencyMsg("Could you share a few details?"))
	assert.Equal(t, ClientActionProvideDetails, action)
}

func TestClientCorrectionRequiresWarmup(t *testing.T) {
	m := NewClientMachine(testPersona(), forcedTunables(1), rand.New(rand.NewSource(1)))
	s := NewClientState(testPersona())
	s.Phase = ClientPhaseExploring
	require.NotEmpty(t, s.Withheld)

	// Too early: the forget branch must not fire yet.
	s.TurnCount = 1
	assert.Equal(t, ClientActionProvideDetails, m.Next(s, agencyMsg("anything else?")))

	// Warm enough and probability forced to 1: correction fires.
	s.TurnCount = 2
	assert.Equal(t, ClientActionSendCorrection, m.Next(s, agencyMsg("anything else?")))
}

func TestClientProposalRaisesInterestAndNegotiates(t *testing.T) {
	m := NewClientMachine(testPersona(), forcedTunables(0), rand.New(rand.NewSource(1)))
	s := NewClientState(testPersona())
	s.Phase = ClientPhaseExploring
	s.TurnCount = 3

	action := m.Next(s, agencyMsg("Our 7-day itinerary comes to $4,965 total."))
	assert.Equal(t, ClientActionNegotiate, action)
	assert.Equal(t, ClientPhaseNegotiating, s.Phase)
	assert.InDelta(t, 0.7, s.Interest, 1e-9)
	assert.Equal(t, 4965, s.LastQuotedPrice)
}

func TestClientPriceShockDecaysInterest(t *testing.T) {
	m := NewClientMachine(testPersona(), forcedTunables(0), rand.New(rand.NewSource(1)))
	s := NewClientState(testPersona())
	s.Phase = ClientPhaseNegotiating
	s.Interest = 0.5

	m.Next(s, agencyMsg("The 7-day package totals $9,000."))
	// 9000 is over the 6000 budget: interest decays by the shock factor
	// before the boost-free decision.
	assert.InDelta(t, 0.35, s.Interest, 1e-9)
}

func TestClientDeclinesBelowThreshold(t *testing.T) {
	m := NewClientMachine(testPersona(), forcedTunables(0), rand.New(rand.NewSource(1)))
	s := NewClientState(testPersona())
	s.Phase = ClientPhaseNegotiating
	s.Interest = 0.25
	s.Withheld = nil

	action := m.Next(s, agencyMsg("Anything else we can help with?"))
	assert.Equal(t, ClientActionDecline, action)
	assert.Equal(t, ClientPhaseDone, s.Phase)
	assert.True(t, s.Phase.Terminal())
}

func TestClientAcceptsOnlyWithDiscount(t *testing.T) {
	m := NewClientMachine(testPersona(), forcedTunables(0), rand.New(rand.NewSource(1)))

	// High interest but no discount seen yet: keeps negotiating.
	s := NewClientState(testPersona())
	s.Phase = ClientPhaseInterested
	s.Interest = 0.85
	s.Withheld = nil
	assert.Equal(t, ClientActionNegotiate, m.Next(s, agencyMsg("happy to help")))

	// Same interest with a discount on the table: accepts.
	s = NewClientState(testPersona())
	s.Phase = ClientPhaseInterested
	s.Interest = 0.85
	s.Withheld = nil
	s.DiscountSeen = 0.05
	action := m.Next(s, agencyMsg("happy to help"))
	assert.Equal(t, ClientActionAccept, action)
	assert.Equal(t, ClientPhaseBooking, s.Phase)
}

func TestClientTerminalPhaseYieldsNoAction(t *testing.T) {
	m := NewClientMachine(testPersona(), forcedTunables(0), rand.New(rand.NewSource(1)))
	s := NewClientState(testPersona())
	s.Phase = ClientPhaseDone

	assert.Equal(t, ClientActionNone, m.Next(s, agencyMsg("hello?")))
}

func TestAgencyGreetsFirst(t *testing.T) {
	m := NewAgencyMachine(testMachineCompany())
	s := NewAgencyState()

	action := m.Next(s, &Message{Sender: SideClient, Body: "Hi, planning a trip to Chile"})
	assert.Equal(t, AgencyActionGreet, action)
	assert.Equal(t, AgencyPhaseGatheringInfo, s.Phase)
}

func TestAgencyGathersThenClarifies(t *testing.T) {
	m := NewAgencyMachine(testMachineCompany())
	s := NewAgencyState()
	s.Phase = AgencyPhaseGatheringInfo

	// Most fields missing: a broad information request.
	assert.Equal(t, AgencyActionRequestInfo, m.Next(s, &Message{Body: "hello"}))

	// Exactly one field left: narrows to clarification.
	s2 := NewAgencyState()
	s2.Phase = AgencyPhaseGatheringInfo
	for _, f := range []extract.Field{extract.FieldDates, extract.FieldGroupSize, extract.FieldAges, extract.FieldSpecialRequirements} {
		s2.Fields = s2.Fields.MarkKnown(f)
	}
	assert.Equal(t, AgencyActionClarify, m.Next(s2, &Message{Body: "more info"}))
	assert.Equal(t, AgencyPhaseClarifying, s2.Phase)
}

func TestAgencyProposesWhenReady(t *testing.T) {
	m := NewAgencyMachine(testMachineCompany())
	s := NewAgencyState()
	s.Phase = AgencyPhaseGatheringInfo
	for _, f := range []extract.Field{extract.FieldDates, extract.FieldGroupSize, extract.FieldAges, extract.FieldBudget} {
		s.Fields = s.Fields.MarkKnown(f)
	}
	s.Facts = extract.Facts{GroupSize: 4, ChildrenAges: []int{12, 8}}

	action := m.Next(s, &Message{Body: "that is everything"})
	assert.Equal(t, AgencyActionSendProposal, action)
	assert.Equal(t, AgencyPhaseProposalSent, s.Phase)
	require.NotNil(t, s.Proposal)
	assert.Equal(t, 1, s.ProposalVersion)
	assert.Equal(t, 4, s.Proposal.Travelers)
}

func TestAgencyOffersBoundedDiscounts(t *testing.T) {
	m := NewAgencyMachine(testMachineCompany())
	s := NewAgencyState()
	s.Phase = AgencyPhaseProposalSent
	s.Facts = extract.Facts{GroupSize: 2}
	s.ProposalVersion = 1
	s.Proposal = pricing.Quote(testMachineCompany(), s.Facts, 1)

	objection := &Message{Body: "that is too expensive for us"}

	assert.Equal(t, AgencyActionOfferDiscount, m.Next(s, objection))
	assert.InDelta(t, 0.05, s.DiscountOffered, 1e-9)
	assert.Equal(t, AgencyActionOfferDiscount, m.Next(s, objection))
	assert.InDelta(t, 0.10, s.DiscountOffered, 1e-9)

	// At the 10% ceiling nothing is left to concede.
	assert.Equal(t, AgencyActionAnswerQuestions, m.Next(s, objection))
	assert.InDelta(t, 0.10, s.DiscountOffered, 1e-9)
}

func TestAgencyConfirmsOnAcceptance(t *testing.T) {
	m := NewAgencyMachine(testMachineCompany())
	s := NewAgencyState()
	s.Phase = AgencyPhaseNegotiating

	action := m.Next(s, &Message{Body: "Perfect, please book it"})
	assert.Equal(t, AgencyActionConfirmBooking, action)
	assert.Equal(t, AgencyPhaseBookingConfirmed, s.Phase)
	assert.True(t, s.Phase.Terminal())
}

func TestAgencyRepricesAfterCorrection(t *testing.T) {
	m := NewAgencyMachine(testMachineCompany())
	s := NewAgencyState()
	s.Phase = AgencyPhaseProposalSent
	s.Facts = extract.Facts{GroupSize: 4}
	s.ProposalVersion = 1
	s.Proposal = pricing.Quote(testMachineCompany(), s.Facts, 1)

	action := m.Next(s, &Message{Body: "Sorry, forgot: our children are ages 12 and 8", Correction: true})
	assert.Equal(t, AgencyActionSendProposal, action)
	assert.Equal(t, 2, s.ProposalVersion)
}

