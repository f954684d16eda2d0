package dialogue

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wandero-ai/client-simulator/internal/extract"
	"github.com/wandero-ai/client-simulator/internal/gateway"
	"github.com/wandero-ai/client-simulator/internal/pricing"
	"github.com/wandero-ai/client-simulator/internal/profile"
	"github.com/wandero-ai/client-simulator/internal/prompt"
	"github.com/wandero-ai/client-simulator/pkg/logger"
	"github.com/wandero-ai/client-simulator/pkg/metrics"
)

// DefaultMaxTurns bounds a conversation when no limit is configured.
const DefaultMaxTurns = 10

// PhaseUpdate is reported to the observer after every completed turn.
type PhaseUpdate struct {
	Turn        int
	ClientPhase ClientPhase
	AgencyPhase AgencyPhase
	Interest    float64
}

// Config assembles everything one conversation needs.
type Config struct {
	Persona  *profile.Persona
	Company  *profile.Company
	Gateway  *gateway.Gateway
	Tunables Tunables
	MaxTurns int
	// Sleeper paces the inter-turn persona delay. Nil means real sleeping.
	Sleeper gateway.Sleeper
	// Rng drives the probabilistic branches. Nil seeds from the clock.
	Rng    *rand.Rand
	Logger *logger.Logger
	// OnPhase, when set, receives a snapshot after each turn.
	OnPhase func(PhaseUpdate)
}

// Orchestrator drives one conversation between the two side machines,
// alternating strictly client then agency until a side reaches a terminal
// phase or a run limit trips.
type Orchestrator struct {
	id       string
	cfg      Config
	client   *ClientMachine
	agency   *AgencyMachine
	cs       *ClientState
	as       *AgencyState
	sleeper  gateway.Sleeper
	rng      *rand.Rand
	log      *logger.Logger
	messages []Message
	errs     []string
}

// New prepares an orchestrator. Both side states start fresh.
func New(cfg Config) *Orchestrator {
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = DefaultMaxTurns
	}
	rng := cfg.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	sleeper := cfg.Sleeper
	if sleeper == nil {
		sleeper = gateway.RealSleeper{}
	}
	id := uuid.Must(uuid.NewV7()).String()
	log := cfg.Logger
	if log == nil {
		log = logger.Global()
	}
	log = log.WithConversation(id, cfg.Persona.Key, cfg.Company.Key)
	return &Orchestrator{
		id:      id,
		cfg:     cfg,
		client:  NewClientMachine(cfg.Persona, cfg.Tunables, rng),
		agency:  NewAgencyMachine(cfg.Company),
		cs:      NewClientState(cfg.Persona),
		as:      NewAgencyState(),
		sleeper: sleeper,
		rng:     rng,
		log:     log,
	}
}

// ID returns the conversation id, fixed at construction.
func (o *Orchestrator) ID() string {
	return o.id
}

// Run plays the conversation to completion and always returns a Result;
// panics inside a turn are recovered into the result's error list.
func (o *Orchestrator) Run(ctx context.Context) (result *Result) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			o.errs = append(o.errs, fmt.Sprintf("conversation panicked: %v", r))
			o.log.Error("conversation panicked", zap.Any("panic", r))
		}
		result = o.buildResult(start)
	}()

	o.log.Info("conversation started")

	lowRun := 0
	var lastAgency *Message

	for turn := 1; turn <= o.cfg.MaxTurns; turn++ {
		if ctx.Err() != nil {
			o.errs = append(o.errs, ctx.Err().Error())
			break
		}

		action := o.client.Next(o.cs, lastAgency)
		if action == ClientActionNone {
			break
		}
		clientMsg := o.clientTurn(ctx, action)
		o.append(clientMsg)

		// The agency learns from every client message before it acts.
		o.as.Fields, o.as.Facts = extract.Apply(clientMsg.Body, o.as.Fields, o.as.Facts)

		// A turn counts as soon as the client has spoken, so a declining
		// final turn is not lost from the tally.
		o.cs.TurnCount = turn
		o.as.TurnCount = turn

		if action == ClientActionDecline {
			break
		}

		agencyAction := o.agency.Next(o.as, &clientMsg)
		if agencyAction != AgencyActionNone {
			agencyMsg := o.agencyTurn(ctx, agencyAction)
			o.append(agencyMsg)
			lastAgency = &agencyMsg
			if o.as.DiscountOffered > 0 {
				o.cs.DiscountSeen = o.as.DiscountOffered
			}
		}

		if o.cs.Interest < o.cfg.Tunables.LowInterestThreshold {
			lowRun++
		} else {
			lowRun = 0
		}
		if lowRun >= o.cfg.Tunables.LowInterestTurns {
			o.cs.Phase = ClientPhaseAbandoned
			o.cs.Ended = true
			o.log.Info("client lost interest, abandoning", zap.Float64("interest", o.cs.Interest))
			break
		}

		if o.cfg.OnPhase != nil {
			o.cfg.OnPhase(PhaseUpdate{
				Turn:        turn,
				ClientPhase: o.cs.Phase,
				AgencyPhase: o.as.Phase,
				Interest:    o.cs.Interest,
			})
		}

		if o.cs.Phase.Terminal() && o.as.Phase.Terminal() {
			break
		}
		if o.cs.Phase.Terminal() {
			break
		}

		o.sleeper.Sleep(ctx, o.cfg.Persona.Quirks.ResponseDelay.Duration())
	}

	return nil // replaced by the deferred buildResult
}

// clientTurn realizes one client action as a message.
func (o *Orchestrator) clientTurn(ctx context.Context, action ClientAction) Message {
	var (
		p          prompt.Prompt
		correction bool
	)

	switch action {
	case ClientActionInquire:
		disclose := o.disclose(extract.FieldDates, extract.FieldGroupSize)
		p = prompt.ClientInquiry(o.cfg.Persona, o.cfg.Company, disclose)
		o.markShared(disclose)
	case ClientActionProvideDetails:
		disclose := o.disclose(o.cs.Shared.Missing()...)
		p = prompt.ClientDetails(o.cfg.Persona, disclose)
		o.markShared(disclose)
	case ClientActionSendCorrection:
		f, ok := o.cs.PopWithheld()
		if !ok {
			p = prompt.ClientDetails(o.cfg.Persona, nil)
		} else {
			p = prompt.ClientCorrection(o.cfg.Persona, f)
			o.markShared([]extract.Field{f})
			correction = true
		}
	case ClientActionNegotiate:
		p = prompt.ClientNegotiation(o.cfg.Persona, o.cs.LastQuotedPrice)
	case ClientActionAccept:
		p = prompt.ClientAcceptance(o.cfg.Persona)
	case ClientActionDecline:
		p = prompt.ClientDecline(o.cfg.Persona)
	}

	body := o.cfg.Gateway.Realize(ctx, p.Text, p.Fallback)
	if o.rng.Float64() < o.cfg.Tunables.TypoProbability {
		body = injectTypo(body, o.rng)
	}

	return o.message(SideClient, o.cfg.Persona.Name, p.Subject, body, correction)
}

// agencyTurn realizes one agency action as a message.
func (o *Orchestrator) agencyTurn(ctx context.Context, action AgencyAction) Message {
	var p prompt.Prompt

	switch action {
	case AgencyActionGreet:
		p = prompt.AgencyGreeting(o.cfg.Company, o.cfg.Persona.Name)
	case AgencyActionRequestInfo:
		p = prompt.AgencyInfoRequest(o.cfg.Company, o.as.Fields.Missing())
	case AgencyActionClarify:
		p = prompt.AgencyClarification(o.cfg.Company, o.as.Fields.Missing())
	case AgencyActionSendProposal:
		metrics.ProposalsTotal.Inc()
		p = prompt.AgencyProposal(o.cfg.Company, o.as.Proposal, o.as.DiscountOffered)
	case AgencyActionOfferDiscount:
		p = prompt.AgencyDiscount(o.cfg.Company, o.as.Proposal, o.as.DiscountOffered)
	case AgencyActionAnswerQuestions:
		p = prompt.AgencyAnswer(o.cfg.Company)
	case AgencyActionConfirmBooking:
		p = prompt.AgencyConfirmation(o.cfg.Company, o.as.Proposal, o.as.DiscountOffered)
	}

	body := o.cfg.Gateway.Realize(ctx, p.Text, p.Fallback)
	return o.message(SideAgency, o.cfg.Company.AgentName, p.Subject, body, false)
}

func (o *Orchestrator) message(side Side, name, subject, body string, correction bool) Message {
	return Message{
		ID:         uuid.Must(uuid.NewV7()).String(),
		Subject:    subject,
		Body:       body,
		Sender:     side,
		SenderName: name,
		Timestamp:  time.Now().UTC(),
		Sentiment:  SentimentScore(body),
		Correction: correction,
	}
}

func (o *Orchestrator) append(m Message) {
	o.messages = append(o.messages, m)
	metrics.MessagesTotal.WithLabelValues(string(m.Sender)).Inc()
}

// disclose filters candidate fields down to those the persona actually has
// and has not deliberately withheld.
func (o *Orchestrator) disclose(candidates ...extract.Field) []extract.Field {
	var out []extract.Field
	for _, f := range candidates {
		if o.cs.Shared.Known(f) || o.withheld(f) {
			continue
		}
		if f == extract.FieldAges && len(o.cfg.Persona.ChildrenAges) == 0 {
			// Nothing to disclose; the agency learns this from group size.
			o.cs.Shared = o.cs.Shared.MarkKnown(f)
			continue
		}
		if f == extract.FieldSpecialRequirements && len(o.cfg.Persona.SpecialRequirements) == 0 {
			o.cs.Shared = o.cs.Shared.MarkKnown(f)
			continue
		}
		out = append(out, f)
	}
	return out
}

func (o *Orchestrator) withheld(f extract.Field) bool {
	for _, w := range o.cs.Withheld {
		if w == f {
			return true
		}
	}
	return false
}

func (o *Orchestrator) markShared(fields []extract.Field) {
	for _, f := range fields {
		o.cs.Shared = o.cs.Shared.MarkKnown(f)
	}
}

// buildResult classifies the outcome and assembles the final record.
func (o *Orchestrator) buildResult(start time.Time) *Result {
	outcome := classify(o.cs, o.as, len(o.errs) > 0)

	clientCount, agencyCount := 0, 0
	for _, m := range o.messages {
		if m.Sender == SideClient {
			clientCount++
		} else {
			agencyCount++
		}
	}

	r := &Result{
		ConversationID:  o.id,
		PersonaKey:      o.cfg.Persona.Key,
		PersonaName:     o.cfg.Persona.Name,
		CompanyKey:      o.cfg.Company.Key,
		CompanyName:     o.cfg.Company.Name,
		StartedAt:       start,
		EndedAt:         time.Now().UTC(),
		Turns:           o.cs.TurnCount,
		ClientMessages:  clientCount,
		AgencyMessages:  agencyCount,
		ClientPhase:     o.cs.Phase,
		AgencyPhase:     o.as.Phase,
		Outcome:         outcome,
		FinalInterest:   o.cs.Interest,
		DiscountOffered: o.as.DiscountOffered,
		Messages:        o.messages,
		Errors:          o.errs,
	}
	if o.as.Proposal != nil {
		r.FinalPrice = pricing.DiscountedTotal(o.as.Proposal, o.as.DiscountOffered)
	}

	o.log.Info("conversation finished",
		zap.String("outcome", string(outcome)),
		zap.Int("turns", r.Turns),
		zap.Float64("interest", r.FinalInterest),
	)
	return r
}

// classify maps terminal state to an outcome. A conversation cut off while
// the client was still warm becomes a scheduled follow-up rather than a loss.
func classify(cs *ClientState, as *AgencyState, hadErrors bool) Outcome {
	switch {
	case as.Phase == AgencyPhaseBookingConfirmed:
		return OutcomeBookingConfirmed
	case cs.Phase == ClientPhaseDone || cs.Phase == ClientPhaseAbandoned:
		return OutcomeDeclined
	case hadErrors:
		return OutcomeIncomplete
	case cs.Interest > 0.5:
		return OutcomeFollowUpScheduled
	default:
		return OutcomeIncomplete
	}
}

// injectTypo swaps two adjacent letters inside one word, the way a hurried
// typist would.
func injectTypo(text string, rng *rand.Rand) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}
	for attempts := 0; attempts < 5; attempts++ {
		i := rng.Intn(len(words))
		w := []rune(words[i])
		if len(w) < 4 {
			continue
		}
		j := 1 + rng.Intn(len(w)-2)
		if !isLetter(w[j]) || !isLetter(w[j+1]) {
			continue
		}
		w[j], w[j+1] = w[j+1], w[j]
		words[i] = string(w)
		return strings.Join(words, " ")
	}
	return text
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
