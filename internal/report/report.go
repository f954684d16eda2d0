// Package report aggregates run results into a summary and writes the
// run record to disk.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/wandero-ai/client-simulator/internal/dialogue"
)

// OutcomeCounts tallies conversation outcomes.
type OutcomeCounts struct {
	Total             int `json:"total"`
	BookingConfirmed  int `json:"booking_confirmed"`
	Declined          int `json:"declined"`
	FollowUpScheduled int `json:"follow_up_scheduled"`
	Incomplete        int `json:"incomplete"`
}

func (c *OutcomeCounts) add(o dialogue.Outcome) {
	c.Total++
	switch o {
	case dialogue.OutcomeBookingConfirmed:
		c.BookingConfirmed++
	case dialogue.OutcomeDeclined:
		c.Declined++
	case dialogue.OutcomeFollowUpScheduled:
		c.FollowUpScheduled++
	default:
		c.Incomplete++
	}
}

// Summary is the aggregate view of one run.
type Summary struct {
	GeneratedAt time.Time                `json:"generated_at"`
	Overall     OutcomeCounts            `json:"overall"`
	BookingRate float64                  `json:"booking_rate"`
	TotalTurns  int                      `json:"total_turns"`
	ByPersona   map[string]OutcomeCounts `json:"by_persona"`
	ByCompany   map[string]OutcomeCounts `json:"by_company"`
}

// Build aggregates results into a summary.
func Build(results []*dialogue.Result) *Summary {
	s := &Summary{
		GeneratedAt: time.Now().UTC(),
		ByPersona:   make(map[string]OutcomeCounts),
		ByCompany:   make(map[string]OutcomeCounts),
	}
	for _, r := range results {
		s.Overall.add(r.Outcome)
		s.TotalTurns += r.Turns

		p := s.ByPersona[r.PersonaKey]
		p.add(r.Outcome)
		s.ByPersona[r.PersonaKey] = p

		c := s.ByCompany[r.CompanyKey]
		c.add(r.Outcome)
		s.ByCompany[r.CompanyKey] = c
	}
	if s.Overall.Total > 0 {
		s.BookingRate = float64(s.Overall.BookingConfirmed) / float64(s.Overall.Total)
	}
	return s
}

// Record is the full run export: summary plus every conversation.
type Record struct {
	Summary *Summary           `json:"summary"`
	Results []*dialogue.Result `json:"results"`
}

// WriteJSON writes the run record to path, indented for human reading.
func WriteJSON(path string, results []*dialogue.Result) error {
	record := Record{Summary: Build(results), Results: results}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Text renders the summary as a terminal-friendly block.
func (s *Summary) Text() string {
	var b strings.Builder
	b.WriteString("Simulation summary\n")
	b.WriteString("==================\n")
	fmt.Fprintf(&b, "Conversations: %d\n", s.Overall.Total)
	fmt.Fprintf(&b, "  booked:      %d\n", s.Overall.BookingConfirmed)
	fmt.Fprintf(&b, "  declined:    %d\n", s.Overall.Declined)
	fmt.Fprintf(&b, "  follow-ups:  %d\n", s.Overall.FollowUpScheduled)
	fmt.Fprintf(&b, "  incomplete:  %d\n", s.Overall.Incomplete)
	fmt.Fprintf(&b, "Booking rate:  %.0f%%\n", s.BookingRate*100)
	if s.Overall.Total > 0 {
		fmt.Fprintf(&b, "Average turns: %.1f\n", float64(s.TotalTurns)/float64(s.Overall.Total))
	}

	if len(s.ByPersona) > 0 {
		b.WriteString("\nBy persona:\n")
		for _, key := range sortedKeys(s.ByPersona) {
			c := s.ByPersona[key]
			fmt.Fprintf(&b, "  %-20s booked %d/%d\n", key, c.BookingConfirmed, c.Total)
		}
	}
	if len(s.ByCompany) > 0 {
		b.WriteString("\nBy company:\n")
		for _, key := range sortedKeys(s.ByCompany) {
			c := s.ByCompany[key]
			fmt.Fprintf(&b, "  %-20s booked %d/%d\n", key, c.BookingConfirmed, c.Total)
		}
	}
	return b.String()
}

func sortedKeys(m map[string]OutcomeCounts) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
