package dialogue

import "time"

// Outcome classifies how a conversation ended.
type Outcome string

const (
	OutcomeBookingConfirmed  Outcome = "booking_confirmed"
	OutcomeDeclined          Outcome = "declined"
	OutcomeFollowUpScheduled Outcome = "follow_up_scheduled"
	OutcomeIncomplete        Outcome = "incomplete"
)

// Result is the full record of one simulated conversation. Exactly one
// Result is produced per requested persona/company pair, whatever happens
// during the run.
type Result struct {
	ConversationID  string      `json:"conversation_id"`
	PersonaKey      string      `json:"persona_key"`
	PersonaName     string      `json:"persona_name"`
	CompanyKey      string      `json:"company_key"`
	CompanyName     string      `json:"company_name"`
	StartedAt       time.Time   `json:"started_at"`
	EndedAt         time.Time   `json:"ended_at"`
	Turns           int         `json:"turns"`
	ClientMessages  int         `json:"client_messages"`
	AgencyMessages  int         `json:"agency_messages"`
	ClientPhase     ClientPhase `json:"client_phase"`
	AgencyPhase     AgencyPhase `json:"agency_phase"`
	Outcome         Outcome     `json:"outcome"`
	FinalInterest   float64     `json:"final_interest"`
	DiscountOffered float64     `json:"discount_offered"`
	FinalPrice      int         `json:"final_price,omitempty"`
	Messages        []Message   `json:"messages"`
	Errors          []string    `json:"errors,omitempty"`
}

// Duration returns the wall-clock length of the conversation.
func (r *Result) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}
