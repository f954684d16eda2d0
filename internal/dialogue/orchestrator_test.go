package dialogue

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandero-ai/client-simulator/internal/gateway"
	"github.com/wandero-ai/client-simulator/internal/llm"
	"github.com/wandero-ai/client-simulator/internal/profile"
	"github.com/wandero-ai/client-simulator/pkg/logger"
)

// scriptedOrchestrator wires a fully offline conversation: the scripted
// provider echoes the facts block of every prompt, so extraction and the
// machines run the same way they would against a live provider.
func scriptedOrchestrator(t *testing.T, personaKey, companyKey string, tun Tunables) *Orchestrator {
	t.Helper()

	store := profile.NewStore()
	persona, err := store.Persona(personaKey)
	require.NoError(t, err)
	company, err := store.Company(companyKey)
	require.NoError(t, err)

	gw := gateway.New(llm.NewScriptedClient(), gateway.Pacing{}, gateway.NopSleeper{}, logger.NewNop())

	return New(Config{
		Persona:  persona,
		Company:  company,
		Gateway:  gw,
		Tunables: tun,
		MaxTurns: 10,
		Sleeper:  gateway.NopSleeper{},
		Rng:      rand.New(rand.NewSource(7)),
		Logger:   logger.NewNop(),
	})
}

func TestConversationReachesBooking(t *testing.T) {
	tun := DefaultTunables()
	tun.ForgetProbability = 1 // corrections always fire once eligible
	tun.TypoProbability = 0

	orch := scriptedOrchestrator(t, "worried_parent", "family_adventures", tun)
	result := orch.Run(context.Background())

	require.NotNil(t, result)
	assert.Equal(t, OutcomeBookingConfirmed, result.Outcome)
	assert.Equal(t, ClientPhaseBooking, result.ClientPhase)
	assert.Equal(t, AgencyPhaseBookingConfirmed, result.AgencyPhase)
	assert.InDelta(t, 0.05, result.DiscountOffered, 1e-9)
	assert.Greater(t, result.FinalPrice, 0)
	assert.LessOrEqual(t, result.Turns, 10)
	assert.Empty(t, result.Errors)
}

func TestConversationDeclinesOverBudget(t *testing.T) {
	tun := DefaultTunables()
	tun.TypoProbability = 0

	// A $1000-1500 backpacker against a luxury operator: every quote lands
	// far over budget and interest decays to a decline.
	orch := scriptedOrchestrator(t, "budget_backpacker", "luxury_chile", tun)
	result := orch.Run(context.Background())

	require.NotNil(t, result)
	assert.Equal(t, OutcomeDeclined, result.Outcome)
	assert.Equal(t, ClientPhaseDone, result.ClientPhase)
	assert.NotEqual(t, AgencyPhaseBookingConfirmed, result.AgencyPhase)

	// The declining email is a turn like any other: the client spoke once
	// per counted turn, and the agency never answered the last one.
	assert.Equal(t, result.ClientMessages, result.Turns)
	assert.Equal(t, result.ClientMessages, result.AgencyMessages+1)
	require.NotEmpty(t, result.Messages)
	assert.Equal(t, SideClient, result.Messages[len(result.Messages)-1].Sender)
}

func TestConversationAbandonsOnSustainedLowInterest(t *testing.T) {
	tun := DefaultTunables()
	tun.TypoProbability = 0
	// With declining disabled the client keeps negotiating, so repeated
	// over-budget quotes grind interest down until the abandonment cutoff.
	tun.DeclineThreshold = 0

	persona := &profile.Persona{
		Key:                "stretched_solo",
		Name:               "Dana Wolfe",
		Type:               "Solo Backpacker",
		GroupSize:          1,
		BudgetMin:          100,
		BudgetMax:          200,
		Destination:        "Chile",
		TravelDates:        "March 3-9, 2025",
		CommunicationStyle: "casual",
	}
	company := &profile.Company{
		Key:         "apex_expeditions",
		Name:        "Apex Expeditions",
		AgentName:   "Iris",
		Type:        "luxury",
		Specialties: []string{"luxury lodges"},
		Pricing: profile.PricingRules{
			BaseRatePerPersonPerDay: 400,
			DurationDays:            6,
			ChildDiscount:           0.3,
			ChildAgeThreshold:       12,
			MaxDiscount:             0.20,
		},
	}

	gw := gateway.New(llm.NewScriptedClient(), gateway.Pacing{}, gateway.NopSleeper{}, logger.NewNop())
	orch := New(Config{
		Persona:  persona,
		Company:  company,
		Gateway:  gw,
		Tunables: tun,
		MaxTurns: 10,
		Sleeper:  gateway.NopSleeper{},
		Rng:      rand.New(rand.NewSource(7)),
		Logger:   logger.NewNop(),
	})
	result := orch.Run(context.Background())

	require.NotNil(t, result)
	assert.Equal(t, ClientPhaseAbandoned, result.ClientPhase)
	assert.Equal(t, OutcomeDeclined, result.Outcome)
	assert.Less(t, result.FinalInterest, tun.LowInterestThreshold)
	assert.Less(t, result.Turns, 10)
}

func TestConversationAlternatesStrictly(t *testing.T) {
	tun := DefaultTunables()
	tun.ForgetProbability = 1
	tun.TypoProbability = 0

	orch := scriptedOrchestrator(t, "worried_parent", "family_adventures", tun)
	result := orch.Run(context.Background())

	require.NotEmpty(t, result.Messages)
	assert.Equal(t, SideClient, result.Messages[0].Sender)
	for i := 1; i < len(result.Messages); i++ {
		assert.NotEqual(t, result.Messages[i-1].Sender, result.Messages[i].Sender,
			"messages must alternate")
	}
	assert.Equal(t, len(result.Messages), result.ClientMessages+result.AgencyMessages)
}

func TestConversationCorrectionsResurfaceWithheldDetails(t *testing.T) {
	tun := DefaultTunables()
	tun.ForgetProbability = 1
	tun.TypoProbability = 0

	orch := scriptedOrchestrator(t, "worried_parent", "family_adventures", tun)
	result := orch.Run(context.Background())

	corrections := 0
	for _, m := range result.Messages {
		if m.Correction {
			corrections++
			assert.Equal(t, SideClient, m.Sender)
		}
	}
	// The worried parent withholds the children's ages and the dietary
	// needs, and reintroduces both.
	assert.Equal(t, 2, corrections)
}

func TestConversationCancelledContextStops(t *testing.T) {
	tun := DefaultTunables()
	tun.TypoProbability = 0

	orch := scriptedOrchestrator(t, "adventure_couple", "chile_adventures", tun)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := orch.Run(ctx)

	require.NotNil(t, result)
	assert.Equal(t, OutcomeIncomplete, result.Outcome)
	assert.NotEmpty(t, result.Errors)
	assert.Empty(t, result.Messages)
}

func TestInjectTypoKeepsLength(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	in := "our budget is flexible within reason"
	out := injectTypo(in, rng)
	assert.Len(t, out, len(in))
	assert.NotEqual(t, "", out)
}

func TestPopWithheld(t *testing.T) {
	store := profile.NewStore()
	persona, err := store.Persona("worried_parent")
	require.NoError(t, err)

	s := NewClientState(persona)
	require.Len(t, s.Withheld, 2)

	first, ok := s.PopWithheld()
	require.True(t, ok)
	second, ok := s.PopWithheld()
	require.True(t, ok)
	assert.NotEqual(t, first, second)

	_, ok = s.PopWithheld()
	assert.False(t, ok)
}
