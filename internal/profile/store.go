package profile

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Store is a read-only keyed collection of personas and companies. It is
// populated once before any conversation starts and safely shared across
// workers.
type Store struct {
	personas  map[string]*Persona
	companies map[string]*Company
}

// NewStore returns a store seeded with the builtin roster.
func NewStore() *Store {
	return &Store{
		personas:  builtinPersonas(),
		companies: builtinCompanies(),
	}
}

// fileSchema is the on-disk YAML layout for external profile rosters.
type fileSchema struct {
	Personas  map[string]*Persona `yaml:"personas"`
	Companies map[string]*Company `yaml:"companies"`
}

// LoadFile merges persona and company records from a YAML file into the
// store. Records with existing keys are replaced.
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read profile file: %w", err)
	}

	var doc fileSchema
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse profile file: %w", err)
	}

	for key, p := range doc.Personas {
		p.Key = key
		if p.Quirks.ResponseDelay == "" {
			p.Quirks.ResponseDelay = DelayMedium
		}
		if err := p.Validate(); err != nil {
			return err
		}
		s.personas[key] = p
	}
	for key, c := range doc.Companies {
		c.Key = key
		if err := c.Validate(); err != nil {
			return err
		}
		s.companies[key] = c
	}

	return nil
}

// Persona looks up a persona by key.
func (s *Store) Persona(key string) (*Persona, error) {
	p, ok := s.personas[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPersona, key)
	}
	return p, nil
}

// Company looks up a company by key.
func (s *Store) Company(key string) (*Company, error) {
	c, ok := s.companies[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompany, key)
	}
	return c, nil
}

// PersonaKeys returns all persona keys in stable order.
func (s *Store) PersonaKeys() []string {
	keys := make([]string, 0, len(s.personas))
	for k := range s.personas {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CompanyKeys returns all company keys in stable order.
func (s *Store) CompanyKeys() []string {
	keys := make([]string, 0, len(s.companies))
	for k := range s.companies {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
