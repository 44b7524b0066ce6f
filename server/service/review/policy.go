package review

// Interval policy constants. Intervals are whole calendar days.
const (
	// HardIntervalDays is the fixed interval after a failed recall.
	HardIntervalDays = 1
	// ConfuseMinIntervalDays is the floor for a hesitant recall.
	ConfuseMinIntervalDays = 3
	// EasyMinIntervalDays is the floor for an effortless recall.
	EasyMinIntervalDays = 7
)

// NextInterval computes the next review interval in days from the outcome and
// the current consecutive-success count.
//
// A hard outcome always drops back to one day. A confused recall grows
// linearly, an easy recall doubles, and both are clamped to a minimum so an
// early-stage card never schedules sooner than its outcome deserves.
//
// Callers must pass an Outcome produced by ParseOutcome; unknown labels are
// rejected there. Any other value maps to the conservative hard interval.
func NextInterval(outcome Outcome, repetitions int32) int32 {
	switch outcome {
	case OutcomeHard:
		return HardIntervalDays
	case OutcomeConfuse:
		return maxInt32(ConfuseMinIntervalDays, repetitions+1)
	case OutcomeEasy:
		return maxInt32(EasyMinIntervalDays, repetitions*2)
	default:
		return HardIntervalDays
	}
}

// NextRepetitions computes the consecutive-success count after a review.
// Hard resets the count; anything else extends it.
func NextRepetitions(outcome Outcome, repetitions int32) int32 {
	if outcome == OutcomeHard {
		return 0
	}
	return repetitions + 1
}

func maxInt32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
