package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatingForScore(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, RatingStrongBuy},
		{85, RatingStrongBuy},
		{84, RatingBuy},
		{70, RatingBuy},
		{69, RatingHold},
		{50, RatingHold},
		{49, RatingRisk},
		{0, RatingRisk},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RatingForScore(tt.score), "score %d", tt.score)
	}
}

func TestDecisionForScore(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{85, DecisionBuy},
		{70, DecisionBuy},
		{69, DecisionHold},
		{50, DecisionHold},
		{49, DecisionDoNotBuy},
		{0, DecisionDoNotBuy},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DecisionForScore(tt.score), "score %d", tt.score)
	}
}

func TestInsightForScore(t *testing.T) {
	assert.Equal(t, InsightExceptional, InsightForScore(92))
	assert.Equal(t, InsightStrong, InsightForScore(75))
	assert.Equal(t, InsightMixed, InsightForScore(55))
	assert.Equal(t, InsightRisk, InsightForScore(30))
}
