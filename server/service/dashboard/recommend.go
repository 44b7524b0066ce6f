package dashboard

// Recommendation thresholds, tuned for a daily study habit.
const (
	// OverduePriorityThreshold is the overdue count above which clearing the
	// backlog takes priority over new material.
	OverduePriorityThreshold = 10
	// HeavyLoadThreshold is the due-now count above which one sitting is too
	// much and the session should be split.
	HeavyLoadThreshold = 20
)

// Recommendation is the study advice derived from a learner's stats.
type Recommendation struct {
	Message          string `json:"message"`
	ShouldStudyToday bool   `json:"should_study_today"`
}

// Recommend maps study stats to advice. The rules are evaluated in order and
// the first match wins; no I/O, no side effects.
func Recommend(stats *StudyStats) *Recommendation {
	dueNow := stats.OverdueCount + stats.TodayCount

	switch {
	case dueNow == 0:
		return &Recommendation{
			Message:          "You're all caught up. Nothing is due today.",
			ShouldStudyToday: false,
		}
	case stats.OverdueCount > OverduePriorityThreshold:
		return &Recommendation{
			Message:          "You have a large overdue backlog. Prioritize overdue cards before anything new.",
			ShouldStudyToday: true,
		}
	case dueNow > HeavyLoadThreshold:
		return &Recommendation{
			Message:          "Today's load is heavy. Split your reviews into smaller sessions.",
			ShouldStudyToday: true,
		}
	case dueNow > 0:
		return &Recommendation{
			Message:          "A few cards are waiting. Start now and keep your streak going.",
			ShouldStudyToday: true,
		}
	default:
		// Unreachable while dueNow is a count, kept so the rule table is
		// total over any stats value.
		return &Recommendation{
			Message:          "Keep a steady pace with your upcoming reviews.",
			ShouldStudyToday: false,
		}
	}
}
