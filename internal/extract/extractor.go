package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Facts holds the concrete values recovered from message text. A zero field
// means the corresponding value has not been seen yet.
type Facts struct {
	TravelDates         string
	GroupSize           int
	ChildrenAges        []int
	BudgetMin           int
	BudgetMax           int
	SpecialRequirements []string
}

var (
	monthNames = `january|february|march|april|may|june|july|august|september|october|november|december`

	dateRangeRe = regexp.MustCompile(`(?i)\b(` + monthNames + `)\s+(\d{1,2})\s*(?:-|–|to)\s*(\d{1,2})\b`)

	familyOfRe  = regexp.MustCompile(`(?i)\bfamily of (\d{1,2})\b`)
	peopleRe    = regexp.MustCompile(`(?i)\b(\d{1,2})\s+(?:people|travelers|travellers|persons|executives|guests)\b`)
	adultsRe    = regexp.MustCompile(`(?i)\b(\d{1,2})\s+adults?\b`)
	childrenRe  = regexp.MustCompile(`(?i)\b(\d{1,2})\s+(?:children|kids)\b`)
	wordGroupRe = regexp.MustCompile(`(?i)\b(two|three|four|five|six)\s+(?:people|of us|travelers|travellers)\b`)

	agePairRe  = regexp.MustCompile(`(?i)\bages?d?\s+(\d{1,2})\s*(?:and|&|,)\s*(\d{1,2})\b`)
	yearsOldRe = regexp.MustCompile(`(?i)\b(\d{1,2})\s+and\s+(\d{1,2})\s+years?\s+old\b`)

	budgetRangeRe = regexp.MustCompile(`\$\s*([\d,]+)\s*(?:-|–|to)\s*\$?\s*([\d,]+)`)

	requirementRe = regexp.MustCompile(`(?i)[^.!?;\n]*\b(allerg\w*|vegetarian|vegan|gluten[- ]free|diabetic|dietary|wheelchair|mobility|medication)\b[^.!?;\n]*`)

	noChildrenRe = regexp.MustCompile(`(?i)\bno (?:children|kids)\b|\badults only\b`)
)

var numberWords = map[string]int{
	"two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
}

// Apply evaluates every extraction rule against the text and returns the
// updated field set and facts. Rules are independent and idempotent:
// evaluation order does not matter, and a field that matches nothing simply
// stays missing. Apply never removes knowledge.
func Apply(text string, fields FieldSet, facts Facts) (FieldSet, Facts) {
	if m := dateRangeRe.FindStringSubmatch(text); m != nil {
		fields = fields.MarkKnown(FieldDates)
		if facts.TravelDates == "" {
			facts.TravelDates = capitalize(m[1]) + " " + m[2] + "-" + m[3]
		}
	}

	if size := matchGroupSize(text); size > 0 {
		fields = fields.MarkKnown(FieldGroupSize)
		if facts.GroupSize == 0 {
			facts.GroupSize = size
		}
	}

	if ages := matchAges(text); ages != nil {
		fields = fields.MarkKnown(FieldAges)
		if facts.ChildrenAges == nil {
			facts.ChildrenAges = ages
		}
	}

	// An adults-only party settles the ages question with no ages to record.
	if noChildrenRe.MatchString(text) || soloOrCouple(text) {
		fields = fields.MarkKnown(FieldAges)
	}

	if m := budgetRangeRe.FindStringSubmatch(text); m != nil {
		lo, hi := parseAmount(m[1]), parseAmount(m[2])
		if lo > 0 && hi >= lo {
			fields = fields.MarkKnown(FieldBudget)
			if facts.BudgetMin == 0 {
				facts.BudgetMin, facts.BudgetMax = lo, hi
			}
		}
	}

	if reqs := requirementRe.FindAllString(text, -1); reqs != nil {
		fields = fields.MarkKnown(FieldSpecialRequirements)
		for _, r := range reqs {
			r = strings.TrimSpace(r)
			if r != "" && !containsFold(facts.SpecialRequirements, r) {
				facts.SpecialRequirements = append(facts.SpecialRequirements, r)
			}
		}
	}

	return fields, facts
}

func matchGroupSize(text string) int {
	if m := familyOfRe.FindStringSubmatch(text); m != nil {
		return atoi(m[1])
	}
	if m := peopleRe.FindStringSubmatch(text); m != nil {
		return atoi(m[1])
	}
	if m := wordGroupRe.FindStringSubmatch(text); m != nil {
		return numberWords[strings.ToLower(m[1])]
	}

	// "2 adults and 2 children" style counts compose.
	adults := 0
	if m := adultsRe.FindStringSubmatch(text); m != nil {
		adults = atoi(m[1])
	}
	if adults > 0 {
		children := 0
		if m := childrenRe.FindStringSubmatch(text); m != nil {
			children = atoi(m[1])
		}
		return adults + children
	}

	lower := strings.ToLower(text)
	if strings.Contains(lower, "just myself") || strings.Contains(lower, "traveling solo") || strings.Contains(lower, "travelling solo") {
		return 1
	}
	if strings.Contains(lower, "my partner and i") || strings.Contains(lower, "the two of us") {
		return 2
	}
	return 0
}

func soloOrCouple(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "just myself") ||
		strings.Contains(lower, "traveling solo") ||
		strings.Contains(lower, "travelling solo") ||
		strings.Contains(lower, "my partner and i") ||
		strings.Contains(lower, "the two of us")
}

func matchAges(text string) []int {
	for _, re := range []*regexp.Regexp{agePairRe, yearsOldRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			a, b := atoi(m[1]), atoi(m[2])
			// Ages above the pattern's plausible child range are almost
			// certainly dates or counts.
			if a > 0 && a < 18 && b > 0 && b < 18 {
				return []int{a, b}
			}
		}
	}
	return nil
}

func parseAmount(s string) int {
	return atoi(strings.ReplaceAll(s, ",", ""))
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func capitalize(s string) string {
	s = strings.ToLower(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
