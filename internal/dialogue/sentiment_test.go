package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentimentScore(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"positive", "Perfect, sounds good, let's book it!", 1.0},
		{"negative", "Too expensive, that is too much, and I'm worried about the pace", -1.0},
		{"single positive", "great itinerary", 1.0 / 3},
		{"neutral", "When do we depart?", 0},
		{"mixed", "Great option but too expensive", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SentimentScore(tt.text), 1e-9)
		})
	}
}

func TestLooksLikeProposal(t *testing.T) {
	assert.True(t, LooksLikeProposal("A 7-day itinerary for $2,400 total"))
	assert.True(t, LooksLikeProposal("the full itinerary comes to $999"))
	assert.False(t, LooksLikeProposal("our packages start at $500"))
	assert.False(t, LooksLikeProposal("a 7-day trip through Patagonia"))
	assert.False(t, LooksLikeProposal("thanks for reaching out"))
}

func TestQuotedPrice(t *testing.T) {
	assert.Equal(t, 4965, QuotedPrice("the total is $4,965 with transfers at $200"))
	assert.Equal(t, 0, QuotedPrice("no numbers here"))
	assert.Equal(t, 1500, QuotedPrice("$1500"))
}
