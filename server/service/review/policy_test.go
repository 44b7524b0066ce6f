package review

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextInterval(t *testing.T) {
	tests := []struct {
		outcome     Outcome
		repetitions int32
		expected    int32
	}{
		{OutcomeHard, 0, 1},
		{OutcomeHard, 5, 1},
		{OutcomeHard, 100, 1},
		{OutcomeConfuse, 0, 3},
		{OutcomeConfuse, 2, 3},
		{OutcomeConfuse, 3, 4},
		{OutcomeConfuse, 10, 11},
		{OutcomeEasy, 0, 7},
		{OutcomeEasy, 3, 7},
		{OutcomeEasy, 4, 8},
		{OutcomeEasy, 10, 20},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.outcome, tt.repetitions), func(t *testing.T) {
			assert.Equal(t, tt.expected, NextInterval(tt.outcome, tt.repetitions))
		})
	}
}

func TestNextIntervalMonotonicity(t *testing.T) {
	// For a fixed repetition count, easy never schedules sooner than confuse,
	// and confuse never sooner than hard.
	for r := int32(0); r <= 50; r++ {
		easy := NextInterval(OutcomeEasy, r)
		confuse := NextInterval(OutcomeConfuse, r)
		hard := NextInterval(OutcomeHard, r)
		assert.GreaterOrEqual(t, easy, confuse, "repetitions=%d", r)
		assert.GreaterOrEqual(t, confuse, hard, "repetitions=%d", r)
	}
}

func TestNextIntervalAlwaysPositive(t *testing.T) {
	for _, outcome := range []Outcome{OutcomeHard, OutcomeConfuse, OutcomeEasy} {
		for r := int32(0); r <= 50; r++ {
			assert.GreaterOrEqual(t, NextInterval(outcome, r), int32(1))
		}
	}
}

func TestNextIntervalUnknownOutcomeFallsBackToHard(t *testing.T) {
	// ParseOutcome rejects unknown labels before the policy runs; if a raw
	// Outcome value ever slips through, the conservative interval applies.
	assert.Equal(t, int32(HardIntervalDays), NextInterval(Outcome("banana"), 5))
}

func TestNextRepetitions(t *testing.T) {
	assert.Equal(t, int32(0), NextRepetitions(OutcomeHard, 0))
	assert.Equal(t, int32(0), NextRepetitions(OutcomeHard, 7))
	assert.Equal(t, int32(1), NextRepetitions(OutcomeConfuse, 0))
	assert.Equal(t, int32(4), NextRepetitions(OutcomeConfuse, 3))
	assert.Equal(t, int32(1), NextRepetitions(OutcomeEasy, 0))
	assert.Equal(t, int32(6), NextRepetitions(OutcomeEasy, 5))
}
