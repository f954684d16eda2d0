package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandero-ai/client-simulator/internal/extract"
	"github.com/wandero-ai/client-simulator/internal/pricing"
	"github.com/wandero-ai/client-simulator/internal/profile"
)

func promptPersona() *profile.Persona {
	return &profile.Persona{
		Key:                 "test_family",
		Name:                "Sam Rivera",
		Type:                "Family Vacation Planner",
		GroupSize:           4,
		ChildrenAges:        []int{12, 8},
		BudgetMin:           4000,
		BudgetMax:           6000,
		Destination:         "Chile",
		TravelDates:         "July 15-22, 2024",
		SpecialRequirements: []string{"nut allergy"},
		CommunicationStyle:  "polite",
	}
}

func promptCompany() *profile.Company {
	return &profile.Company{
		Key:         "test_tours",
		Name:        "Test Tours",
		AgentName:   "Ana",
		Type:        "family",
		Specialties: []string{"family tours"},
	}
}

// Every prompt must carry its facts both in the generation text and in the
// fallback, so a failed generation still moves the conversation forward.
func TestClientInquiryCarriesFacts(t *testing.T) {
	p := ClientInquiry(promptPersona(), promptCompany(), []extract.Field{extract.FieldDates, extract.FieldGroupSize})

	assert.Contains(t, p.Text, "Facts:")
	for _, out := range []string{p.Text, p.Fallback} {
		assert.Contains(t, out, "July 15-22, 2024")
		assert.Contains(t, out, "family of 4")
	}
	assert.NotEmpty(t, p.Subject)
}

func TestClientDetailsOmitsUndisclosedFields(t *testing.T) {
	p := ClientDetails(promptPersona(), []extract.Field{extract.FieldBudget})

	assert.Contains(t, p.Fallback, "$4000-6000")
	assert.NotContains(t, p.Fallback, "ages 12 and 8")
	assert.NotContains(t, p.Fallback, "nut allergy")
}

func TestClientCorrectionNamesTheDetail(t *testing.T) {
	p := ClientCorrection(promptPersona(), extract.FieldAges)
	assert.Contains(t, p.Fallback, "forgot")
	assert.Contains(t, p.Fallback, "ages 12 and 8")
}

func TestClientNegotiationMentionsBudget(t *testing.T) {
	p := ClientNegotiation(promptPersona(), 7000)
	assert.Contains(t, p.Fallback, "$7000")
	assert.Contains(t, p.Fallback, "$4000-6000")
	assert.Contains(t, strings.ToLower(p.Fallback), "cheaper")
}

func TestAgencyProposalKeepsPrices(t *testing.T) {
	prop := &pricing.Proposal{
		Name:         "Test Package",
		Version:      1,
		DurationDays: 7,
		Travelers:    4,
		LineItems:    []pricing.LineItem{{Name: "Transfers", Amount: 200}},
		Total:        4965,
	}

	p := AgencyProposal(promptCompany(), prop, 0)
	require.Contains(t, p.Fallback, "$4965")
	assert.Contains(t, p.Fallback, "7-day")
	assert.Contains(t, p.Fallback, "Transfers: $200")

	discounted := AgencyProposal(promptCompany(), prop, 0.05)
	assert.Contains(t, discounted.Fallback, "$4717")
	assert.Contains(t, discounted.Fallback, "5%")
}

func TestAgencyInfoRequestAsksOnlyMissing(t *testing.T) {
	p := AgencyInfoRequest(promptCompany(), []extract.Field{extract.FieldBudget})
	assert.Contains(t, p.Fallback, "budget")
	assert.NotContains(t, p.Fallback, "children")
}
