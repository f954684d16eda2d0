package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreBuiltins(t *testing.T) {
	s := NewStore()

	assert.Equal(t, []string{
		"adventure_couple", "budget_backpacker", "corporate_planner",
		"retired_couple", "worried_parent",
	}, s.PersonaKeys())
	assert.Equal(t, []string{
		"chile_adventures", "family_adventures", "luxury_chile", "patagonia_tours",
	}, s.CompanyKeys())

	for _, key := range s.PersonaKeys() {
		p, err := s.Persona(key)
		require.NoError(t, err)
		assert.NoError(t, p.Validate(), "builtin persona %s", key)
	}
	for _, key := range s.CompanyKeys() {
		c, err := s.Company(key)
		require.NoError(t, err)
		assert.NoError(t, c.Validate(), "builtin company %s", key)
	}
}

func TestStoreUnknownKeys(t *testing.T) {
	s := NewStore()

	_, err := s.Persona("nobody")
	assert.ErrorIs(t, err, ErrUnknownPersona)

	_, err = s.Company("nowhere")
	assert.ErrorIs(t, err, ErrUnknownCompany)
}

func TestLoadFileMergesAndValidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
personas:
  solo_photographer:
    name: Ana Silva
    group_size: 1
    budget_min: 2000
    budget_max: 3000
    destination: Chile
    travel_dates: March 3-10, 2025
companies:
  andes_trails:
    name: Andes Trails
    agent_name: Pedro
    pricing:
      base_rate_per_person_per_day: 200
      duration_days: 5
      max_discount: 0.1
`), 0o644))

	s := NewStore()
	require.NoError(t, s.LoadFile(path))

	p, err := s.Persona("solo_photographer")
	require.NoError(t, err)
	assert.Equal(t, "Ana Silva", p.Name)
	assert.Equal(t, "solo_photographer", p.Key)
	assert.Equal(t, DelayMedium, p.Quirks.ResponseDelay)

	c, err := s.Company("andes_trails")
	require.NoError(t, err)
	assert.Equal(t, 200, c.Pricing.BaseRatePerPersonPerDay)

	// Builtins survive a merge.
	_, err = s.Persona("worried_parent")
	assert.NoError(t, err)
}

func TestLoadFileRejectsInvalidRecords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
personas:
  broken:
    name: No Budget
    group_size: 2
`), 0o644))

	s := NewStore()
	err := s.LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "budget")
}

func TestBudgetRange(t *testing.T) {
	p := &Persona{BudgetMin: 4000, BudgetMax: 6000}
	assert.Equal(t, "$4000-6000", p.BudgetRange())
}

func TestMinPackagePrice(t *testing.T) {
	c := &Company{Pricing: PricingRules{
		BaseRatePerPersonPerDay: 100,
		DurationDays:            10,
		MaxDiscount:             0.2,
	}}
	assert.Equal(t, 800, c.MinPackagePrice())
}
