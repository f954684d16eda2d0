// Package prompt builds the generation prompts and fallback texts for every
// message kind in a conversation. Each prompt carries a Facts block with the
// concrete details the message must convey, so generated and fallback text
// alike stay machine-extractable.
package prompt

import (
	"fmt"
	"strings"

	"github.com/wandero-ai/client-simulator/internal/extract"
	"github.com/wandero-ai/client-simulator/internal/pricing"
	"github.com/wandero-ai/client-simulator/internal/profile"
)

// Prompt pairs the generation instruction with the subject line and the
// canned text used when generation fails.
type Prompt struct {
	Subject  string
	Text     string
	Fallback string
}

func clientPreamble(p *profile.Persona) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, a %s traveler writing an email to a travel agency.\n", p.Name, p.Type)
	if len(p.Traits) > 0 {
		fmt.Fprintf(&b, "Your personality: %s.\n", strings.Join(p.Traits, ", "))
	}
	fmt.Fprintf(&b, "Your communication style is %s.\n", p.CommunicationStyle)
	b.WriteString("Write only the email body, 2-4 sentences, in a natural personal voice.\n")
	return b.String()
}

func agencyPreamble(c *profile.Company) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a travel consultant at %s, a %s agency specializing in %s.\n",
		c.Name, c.Type, strings.Join(c.Specialties, ", "))
	b.WriteString("Write only the email body, warm and professional, 2-5 sentences.\n")
	return b.String()
}

// factSentence renders one persona detail as a plain statement.
func factSentence(p *profile.Persona, f extract.Field) string {
	switch f {
	case extract.FieldDates:
		return fmt.Sprintf("We are planning to travel %s.", p.TravelDates)
	case extract.FieldGroupSize:
		if len(p.ChildrenAges) > 0 {
			return fmt.Sprintf("We are a family of %d.", p.GroupSize)
		}
		if p.GroupSize == 1 {
			return "I am traveling solo."
		}
		return fmt.Sprintf("We are %d people, no children.", p.GroupSize)
	case extract.FieldAges:
		if len(p.ChildrenAges) == 0 {
			return ""
		}
		parts := make([]string, len(p.ChildrenAges))
		for i, age := range p.ChildrenAges {
			parts[i] = fmt.Sprintf("%d", age)
		}
		return fmt.Sprintf("Our children are ages %s.", strings.Join(parts, " and "))
	case extract.FieldBudget:
		return fmt.Sprintf("Our budget is %s.", p.BudgetRange())
	case extract.FieldSpecialRequirements:
		if len(p.SpecialRequirements) == 0 {
			return ""
		}
		return fmt.Sprintf("Please note: %s.", strings.Join(p.SpecialRequirements, "; "))
	}
	return ""
}

func factsBlock(sentences ...string) string {
	var kept []string
	for _, s := range sentences {
		if s != "" {
			kept = append(kept, s)
		}
	}
	return "Facts:\n" + strings.Join(kept, " ")
}

// ClientInquiry opens the conversation, disclosing the given fields.
func ClientInquiry(p *profile.Persona, c *profile.Company, disclose []extract.Field) Prompt {
	sentences := []string{fmt.Sprintf("Hello, I am interested in a trip to %s.", p.Destination)}
	for _, f := range disclose {
		sentences = append(sentences, factSentence(p, f))
	}
	facts := factsBlock(sentences...)
	return Prompt{
		Subject: fmt.Sprintf("Trip inquiry: %s", p.Destination),
		Text: clientPreamble(p) +
			fmt.Sprintf("Write an opening inquiry email to %s about a trip. Work every fact below into the email.\n%s", c.Name, facts),
		Fallback: strings.Join(sentences, " ") + " Could you tell me more about what you offer?",
	}
}

// ClientDetails answers an information request, disclosing the given fields.
func ClientDetails(p *profile.Persona, disclose []extract.Field) Prompt {
	sentences := make([]string, 0, len(disclose))
	for _, f := range disclose {
		if s := factSentence(p, f); s != "" {
			sentences = append(sentences, s)
		}
	}
	if len(sentences) == 0 {
		sentences = append(sentences, "I think I have shared everything relevant already.")
	}
	facts := factsBlock(sentences...)
	return Prompt{
		Subject: "Re: Your questions",
		Text: clientPreamble(p) +
			"Reply to the agency's questions. Work every fact below into the email.\n" + facts,
		Fallback: "Thanks for getting back to me. " + strings.Join(sentences, " "),
	}
}

// ClientCorrection reintroduces a detail the client previously left out.
func ClientCorrection(p *profile.Persona, f extract.Field) Prompt {
	sentence := factSentence(p, f)
	facts := factsBlock("Sorry, I forgot to mention something.", sentence)
	return Prompt{
		Subject: "Re: One more thing",
		Text: clientPreamble(p) +
			"Write a short apologetic follow-up adding a detail you forgot earlier.\n" + facts,
		Fallback: "Sorry, I forgot to mention something. " + sentence,
	}
}

// ClientNegotiation pushes back on the quoted price.
func ClientNegotiation(p *profile.Persona, quoted int) Prompt {
	sentences := []string{
		fmt.Sprintf("The quoted $%d is too much for us, our budget is %s.", quoted, p.BudgetRange()),
		"Is there a cheaper option or any flexibility on the price?",
	}
	facts := factsBlock(sentences...)
	return Prompt{
		Subject: "Re: About the price",
		Text: clientPreamble(p) +
			"Write a polite reply pushing back on the price. Work every fact below into the email.\n" + facts,
		Fallback: strings.Join(sentences, " "),
	}
}

// ClientAcceptance agrees to the latest offer.
func ClientAcceptance(p *profile.Persona) Prompt {
	sentences := []string{"This sounds perfect. Please go ahead and book it for us."}
	facts := factsBlock(sentences...)
	return Prompt{
		Subject: "Re: Let's book it",
		Text: clientPreamble(p) +
			"Write a short enthusiastic reply accepting the offer and asking to book.\n" + facts,
		Fallback: sentences[0],
	}
}

// ClientDecline turns the offer down.
func ClientDecline(p *profile.Persona) Prompt {
	sentences := []string{"Thank you for your time, but this is not the right fit for us and we will pass."}
	facts := factsBlock(sentences...)
	return Prompt{
		Subject: "Re: Our decision",
		Text: clientPreamble(p) +
			"Write a brief polite reply declining the offer.\n" + facts,
		Fallback: sentences[0],
	}
}

// AgencyGreeting welcomes a new inquiry.
func AgencyGreeting(c *profile.Company, clientName string) Prompt {
	sentences := []string{fmt.Sprintf("Thank you for reaching out to %s, %s! We would love to help plan your trip.", c.Name, clientName)}
	facts := factsBlock(sentences...)
	return Prompt{
		Subject: fmt.Sprintf("Welcome to %s", c.Name),
		Text: agencyPreamble(c) +
			"Write a warm welcome replying to a new trip inquiry.\n" + facts,
		Fallback: sentences[0],
	}
}

// AgencyInfoRequest asks for the still-missing trip details.
func AgencyInfoRequest(c *profile.Company, missing []extract.Field) Prompt {
	questions := make([]string, 0, len(missing))
	for _, f := range missing {
		questions = append(questions, fieldQuestion(f))
	}
	facts := factsBlock(questions...)
	return Prompt{
		Subject: "A few questions about your trip",
		Text: agencyPreamble(c) +
			"Ask the client the questions below, conversationally.\n" + facts,
		Fallback: "To put together the right package we have a few questions. " + strings.Join(questions, " "),
	}
}

// AgencyClarification asks for the last missing detail before quoting.
func AgencyClarification(c *profile.Company, missing []extract.Field) Prompt {
	questions := make([]string, 0, len(missing))
	for _, f := range missing {
		questions = append(questions, fieldQuestion(f))
	}
	if len(questions) == 0 {
		questions = append(questions, "Could you confirm the details we have so far are correct?")
	}
	facts := factsBlock(questions...)
	return Prompt{
		Subject: "Almost there",
		Text: agencyPreamble(c) +
			"We are nearly ready to prepare a quote. Ask only the questions below.\n" + facts,
		Fallback: "We are almost ready to prepare your quote. " + strings.Join(questions, " "),
	}
}

// AgencyProposal presents a priced itinerary.
func AgencyProposal(c *profile.Company, p *pricing.Proposal, discount float64) Prompt {
	sentences := []string{
		fmt.Sprintf("We are delighted to offer the %s: a %d-day itinerary for %d travelers.",
			p.Name, p.DurationDays, p.Travelers),
	}
	for _, item := range p.LineItems {
		sentences = append(sentences, fmt.Sprintf("%s: $%d.", item.Name, item.Amount))
	}
	total := pricing.DiscountedTotal(p, discount)
	if discount > 0 {
		sentences = append(sentences, fmt.Sprintf("With your %.0f%% discount the total comes to $%d.", discount*100, total))
	} else {
		sentences = append(sentences, fmt.Sprintf("The total for the package is $%d.", total))
	}
	facts := factsBlock(sentences...)
	return Prompt{
		Subject: fmt.Sprintf("Your %s proposal", c.Name),
		Text: agencyPreamble(c) +
			"Present the itinerary proposal below enthusiastically. Keep every price exactly as given.\n" + facts,
		Fallback: strings.Join(sentences, " "),
	}
}

// AgencyDiscount offers a concession during negotiation.
func AgencyDiscount(c *profile.Company, p *pricing.Proposal, discount float64) Prompt {
	total := pricing.DiscountedTotal(p, discount)
	sentences := []string{
		fmt.Sprintf("Great news! We can offer a %.0f%% discount on the %d-day package.", discount*100, p.DurationDays),
		fmt.Sprintf("That brings the total to $%d.", total),
	}
	facts := factsBlock(sentences...)
	return Prompt{
		Subject: "A special offer for you",
		Text: agencyPreamble(c) +
			"Offer the discount below graciously. Keep every number exactly as given.\n" + facts,
		Fallback: strings.Join(sentences, " "),
	}
}

// AgencyAnswer responds to questions without changing the offer.
func AgencyAnswer(c *profile.Company) Prompt {
	sentences := []string{"Happy to help with any questions about the itinerary, and the offer on the table still stands."}
	facts := factsBlock(sentences...)
	return Prompt{
		Subject: "Re: Your questions",
		Text: agencyPreamble(c) +
			"Answer the client's questions helpfully without changing the price.\n" + facts,
		Fallback: sentences[0],
	}
}

// AgencyConfirmation confirms the booking at the final price.
func AgencyConfirmation(c *profile.Company, p *pricing.Proposal, discount float64) Prompt {
	total := pricing.DiscountedTotal(p, discount)
	sentences := []string{
		fmt.Sprintf("Wonderful news, your booking is confirmed at a final total of $%d.", total),
		"We will send the full itinerary and payment details shortly.",
	}
	facts := factsBlock(sentences...)
	return Prompt{
		Subject: "Booking confirmed!",
		Text: agencyPreamble(c) +
			"Confirm the booking warmly with the details below.\n" + facts,
		Fallback: strings.Join(sentences, " "),
	}
}

func fieldQuestion(f extract.Field) string {
	switch f {
	case extract.FieldDates:
		return "When are you planning to travel?"
	case extract.FieldGroupSize:
		return "How many people will be traveling?"
	case extract.FieldAges:
		return "Are any children joining, and if so what are their ages?"
	case extract.FieldBudget:
		return "Do you have a budget range in mind?"
	case extract.FieldSpecialRequirements:
		return "Any dietary needs or special requirements we should know about?"
	}
	return "Is there anything else we should know?"
}
