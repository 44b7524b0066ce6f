package review

import "strings"

// Outcome is the canonical self-assessment a learner reports after flipping a
// card. Free-form labels from clients are normalized into one of these three
// values before any scheduling math happens.
type Outcome string

const (
	// OutcomeHard means the learner failed or struggled to recall the card.
	OutcomeHard Outcome = "HARD"
	// OutcomeConfuse means the learner recalled the card with hesitation.
	OutcomeConfuse Outcome = "CONFUSE"
	// OutcomeEasy means the learner recalled the card without effort.
	OutcomeEasy Outcome = "EASY"
)

// outcomeSynonyms maps normalized labels to canonical outcomes. Korean labels
// come from the original client vocabulary and are kept for compatibility.
var outcomeSynonyms = map[string]Outcome{
	"hard":   OutcomeHard,
	"again":  OutcomeHard,
	"forgot": OutcomeHard,
	"어려움":    OutcomeHard,
	"잊음":     OutcomeHard,

	"confuse": OutcomeConfuse,
	"good":    OutcomeConfuse,
	"normal":  OutcomeConfuse,
	"ok":      OutcomeConfuse,
	"보통":      OutcomeConfuse,
	"헷갈림":     OutcomeConfuse,

	"easy":    OutcomeEasy,
	"perfect": OutcomeEasy,
	"쉬움":      OutcomeEasy,
	"완벽":      OutcomeEasy,
}

// ParseOutcome resolves a raw outcome label to its canonical value.
// Matching ignores case and surrounding whitespace. An unknown label returns
// false rather than defaulting; the caller decides how to report it.
func ParseOutcome(label string) (Outcome, bool) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	outcome, ok := outcomeSynonyms[normalized]
	return outcome, ok
}

// String returns the canonical label.
func (o Outcome) String() string {
	return string(o)
}
