// Package profile defines the immutable persona and company records that
// drive simulated conversations.
package profile

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrUnknownPersona is returned when a persona key is not in the store.
var ErrUnknownPersona = errors.New("unknown persona")

// ErrUnknownCompany is returned when a company key is not in the store.
var ErrUnknownCompany = errors.New("unknown company")

// DelayClass categorizes how quickly a persona replies to email.
type DelayClass string

const (
	DelayVeryFast DelayClass = "very_fast"
	DelayFast     DelayClass = "fast"
	DelayMedium   DelayClass = "medium"
	DelaySlow     DelayClass = "slow"
	DelayVerySlow DelayClass = "very_slow"
)

// Duration maps the delay class to the pause taken before replying.
func (d DelayClass) Duration() time.Duration {
	switch d {
	case DelayVeryFast:
		return 500 * time.Millisecond
	case DelayFast:
		return 1 * time.Second
	case DelaySlow:
		return 5 * time.Second
	case DelayVerySlow:
		return 10 * time.Second
	default:
		return 2 * time.Second
	}
}

// Quirks captures persona behavioral knobs.
type Quirks struct {
	ForgetsDetails    bool       `yaml:"forgets_details"`
	AsksManyQuestions bool       `yaml:"asks_many_questions"`
	ResponseDelay     DelayClass `yaml:"response_delay"`
	DecisionSpeed     string     `yaml:"decision_speed"`
}

// Persona is an immutable record describing one simulated traveler.
type Persona struct {
	Key                 string   `yaml:"-"`
	Name                string   `yaml:"name"`
	Email               string   `yaml:"email"`
	Type                string   `yaml:"type"`
	Traits              []string `yaml:"traits"`
	GroupSize           int      `yaml:"group_size"`
	ChildrenAges        []int    `yaml:"children_ages"`
	Concerns            []string `yaml:"concerns"`
	Interests           []string `yaml:"interests"`
	BudgetMin           int      `yaml:"budget_min"`
	BudgetMax           int      `yaml:"budget_max"`
	Destination         string   `yaml:"destination"`
	TravelDates         string   `yaml:"travel_dates"`
	SpecialRequirements []string `yaml:"special_requirements"`
	CommunicationStyle  string   `yaml:"communication_style"`
	Quirks              Quirks   `yaml:"quirks"`
}

// Validate checks the fields a conversation cannot run without.
func (p *Persona) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("persona %q: name is required", p.Key)
	}
	if p.GroupSize <= 0 {
		return fmt.Errorf("persona %q: group size must be positive", p.Key)
	}
	if p.BudgetMin <= 0 || p.BudgetMax < p.BudgetMin {
		return fmt.Errorf("persona %q: invalid budget range %d-%d", p.Key, p.BudgetMin, p.BudgetMax)
	}
	return nil
}

// BudgetRange renders the persona's budget the way it appears in email text.
func (p *Persona) BudgetRange() string {
	return fmt.Sprintf("$%d-%d", p.BudgetMin, p.BudgetMax)
}

// AddOn is a fixed-price service a company attaches to proposals.
type AddOn struct {
	Name  string `yaml:"name"`
	Price int    `yaml:"price"`
}

// PricingRules holds a company's quote calculation parameters.
type PricingRules struct {
	BaseRatePerPersonPerDay int     `yaml:"base_rate_per_person_per_day"`
	DurationDays            int     `yaml:"duration_days"`
	ChildDiscount           float64 `yaml:"child_discount"`
	ChildAgeThreshold       int     `yaml:"child_age_threshold"`
	MaxDiscount             float64 `yaml:"max_discount"`
	AddOns                  []AddOn `yaml:"add_ons"`
	DietaryHandlingFee      int     `yaml:"dietary_handling_fee"`
}

// Company is an immutable record describing one simulated travel agency.
type Company struct {
	Key           string       `yaml:"-"`
	Name          string       `yaml:"name"`
	AgentName     string       `yaml:"agent_name"`
	Type          string       `yaml:"type"`
	Specialties   []string     `yaml:"specialties"`
	Destinations  []string     `yaml:"destinations"`
	SellingPoints []string     `yaml:"selling_points"`
	Pricing       PricingRules `yaml:"pricing"`
}

// Validate checks the fields a conversation cannot run without.
func (c *Company) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("company %q: name is required", c.Key)
	}
	if c.Pricing.BaseRatePerPersonPerDay <= 0 {
		return fmt.Errorf("company %q: base rate must be positive", c.Key)
	}
	if c.Pricing.DurationDays <= 0 {
		return fmt.Errorf("company %q: duration must be positive", c.Key)
	}
	if c.Pricing.MaxDiscount < 0 || c.Pricing.MaxDiscount >= 1 {
		return fmt.Errorf("company %q: max discount %.2f out of range", c.Key, c.Pricing.MaxDiscount)
	}
	return nil
}

// MinPackagePrice is the cheapest quote the company can produce for one
// adult after the maximum discount, used for affordability checks.
func (c *Company) MinPackagePrice() int {
	base := float64(c.Pricing.BaseRatePerPersonPerDay * c.Pricing.DurationDays)
	return int(math.Round(base * (1 - c.Pricing.MaxDiscount)))
}
