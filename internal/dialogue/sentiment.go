package dialogue

import (
	"regexp"
	"strings"
)

// Keyword lists for the sentiment heuristic. Deliberately crude; the goal
// is a representative signal, not accuracy.
var (
	acceptanceWords = []string{"perfect", "great", "wonderful", "excellent", "book", "proceed", "confirm", "sounds good", "let's do it"}
	objectionWords  = []string{"expensive", "cheaper", "too much", "over budget", "can't afford", "change", "modify", "different", "instead", "concern", "worried", "hesitant"}
)

var (
	currencyRe = regexp.MustCompile(`\$\s*([\d,]+)`)
	dayCountRe = regexp.MustCompile(`(?i)\b\d{1,2}[- ]day\b|\bday \d{1,2}\b|\bitinerary\b`)
)

// SentimentScore scores text in [-1, 1] by counting acceptance and
// objection keywords.
func SentimentScore(text string) float64 {
	lower := strings.ToLower(text)
	score := 0
	for _, w := range acceptanceWords {
		if strings.Contains(lower, w) {
			score++
		}
	}
	for _, w := range objectionWords {
		if strings.Contains(lower, w) {
			score--
		}
	}
	if score > 3 {
		score = 3
	}
	if score < -3 {
		score = -3
	}
	return float64(score) / 3
}

// ContainsAcceptance reports whether the text signals agreement to book.
func ContainsAcceptance(text string) bool {
	lower := strings.ToLower(text)
	for _, w := range acceptanceWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// ContainsObjection reports whether the text raises a price or content
// objection.
func ContainsObjection(text string) bool {
	lower := strings.ToLower(text)
	for _, w := range objectionWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// LooksLikeProposal heuristically detects a priced itinerary: a currency
// amount together with a day-count indication.
func LooksLikeProposal(text string) bool {
	return currencyRe.MatchString(text) && dayCountRe.MatchString(text)
}

// QuotedPrice returns the largest dollar amount mentioned in the text, or
// zero when none is present.
func QuotedPrice(text string) int {
	best := 0
	for _, m := range currencyRe.FindAllStringSubmatch(text, -1) {
		n := 0
		for _, r := range strings.ReplaceAll(m[1], ",", "") {
			if r < '0' || r > '9' {
				n = 0
				break
			}
			n = n*10 + int(r-'0')
		}
		if n > best {
			best = n
		}
	}
	return best
}
