// Package pricing computes priced itineraries and bounded negotiation
// discounts from company pricing rules.
package pricing

import (
	"fmt"
	"math"

	"github.com/wandero-ai/client-simulator/internal/extract"
	"github.com/wandero-ai/client-simulator/internal/profile"
)

// DiscountIncrement is the discount fraction offered per negotiation round.
const DiscountIncrement = 0.05

// LineItem is one priced component of a proposal.
type LineItem struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

// Proposal is a priced itinerary offered by the agency side. Proposals are
// immutable; a revised offer supersedes the previous one with a higher
// version.
type Proposal struct {
	Name         string     `json:"name"`
	Version      int        `json:"version"`
	DurationDays int        `json:"duration_days"`
	Travelers    int        `json:"travelers"`
	BasePrice    int        `json:"base_price"`
	LineItems    []LineItem `json:"line_items"`
	Total        int        `json:"total"`
}

// Quote prices a package for the given company and extracted trip facts.
// Base cost is rate x persons x days with the child discount applied to
// each traveler below the company's age threshold; add-on services and the
// dietary handling fee (when special requirements are known) are fixed line
// items on top.
func Quote(company *profile.Company, facts extract.Facts, version int) *Proposal {
	rules := company.Pricing

	travelers := facts.GroupSize
	if travelers < 1 {
		travelers = 1
	}

	children := 0
	for _, age := range facts.ChildrenAges {
		if age < rules.ChildAgeThreshold {
			children++
		}
	}
	if children > travelers {
		children = travelers
	}
	adults := travelers - children

	perPerson := float64(rules.BaseRatePerPersonPerDay * rules.DurationDays)
	base := float64(adults)*perPerson + float64(children)*perPerson*(1-rules.ChildDiscount)

	items := make([]LineItem, 0, len(rules.AddOns)+1)
	total := int(math.Round(base))
	for _, addOn := range rules.AddOns {
		items = append(items, LineItem{Name: addOn.Name, Amount: addOn.Price})
		total += addOn.Price
	}
	if len(facts.SpecialRequirements) > 0 && rules.DietaryHandlingFee > 0 {
		items = append(items, LineItem{Name: "Special dietary arrangements", Amount: rules.DietaryHandlingFee})
		total += rules.DietaryHandlingFee
	}

	return &Proposal{
		Name:         fmt.Sprintf("%s Discovery Package", company.Name),
		Version:      version,
		DurationDays: rules.DurationDays,
		Travelers:    travelers,
		BasePrice:    int(math.Round(base)),
		LineItems:    items,
		Total:        total,
	}
}

// Negotiate returns the next discount step: the smaller of the fixed
// increment and the remaining headroom to the company maximum. Repeated
// calls approach the maximum and never exceed it; at the ceiling the delta
// is zero.
func Negotiate(offered float64, rules profile.PricingRules) float64 {
	headroom := rules.MaxDiscount - offered
	if headroom <= 0 {
		return 0
	}
	if headroom < DiscountIncrement {
		return headroom
	}
	return DiscountIncrement
}

// DiscountedTotal applies a discount fraction to a proposal total.
func DiscountedTotal(p *Proposal, discount float64) int {
	if discount < 0 {
		discount = 0
	}
	if discount > 1 {
		discount = 1
	}
	return int(math.Round(float64(p.Total) * (1 - discount)))
}
