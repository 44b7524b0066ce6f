package dashboard

import (
	"time"

	"github.com/cardloop/cardloop/server/timezone"
	"github.com/cardloop/cardloop/store"
)

// StreakLookbackDays bounds how far back the streak walk goes. A streak
// longer than this reports the cap rather than scanning unbounded history.
const StreakLookbackDays = 30

// StudyStats summarizes a learner's current study load.
type StudyStats struct {
	OverdueCount     int `json:"overdue_count"`
	YesterdayCount   int `json:"yesterday_count"`
	TodayCount       int `json:"today_count"`
	TomorrowCount    int `json:"tomorrow_count"`
	Within3DaysCount int `json:"within_3_days_count"`
	Within5DaysCount int `json:"within_5_days_count"`

	// TotalActiveCards is the number of distinct scheduled cards across all
	// buckets. Within3Days is excluded from the sum because every card in it
	// is already counted through Within5Days.
	TotalActiveCards int `json:"total_active_cards"`

	CompletedTodayCount int `json:"completed_today_count"`
	CurrentStreakDays   int `json:"current_streak_days"`
}

// Aggregate derives per-bucket counts from classified buckets. Streak and
// completed-today come from the activity log, not from the buckets.
func Aggregate(buckets *Buckets, completedToday int, streakDays int) *StudyStats {
	stats := &StudyStats{
		OverdueCount:        len(buckets.Overdue),
		YesterdayCount:      len(buckets.Yesterday),
		TodayCount:          len(buckets.Today),
		TomorrowCount:       len(buckets.Tomorrow),
		Within3DaysCount:    len(buckets.Within3Days),
		Within5DaysCount:    len(buckets.Within5Days),
		CompletedTodayCount: completedToday,
		CurrentStreakDays:   streakDays,
	}
	stats.TotalActiveCards = stats.OverdueCount + stats.YesterdayCount +
		stats.TodayCount + stats.TomorrowCount + stats.Within5DaysCount
	return stats
}

// CurrentStreak counts consecutive calendar days ending today on which the
// learner completed at least one review. The walk stops at the first day
// without activity, so a learner who reviewed yesterday but not yet today
// has a streak of zero.
func CurrentStreak(activities []*store.ReviewActivity, now time.Time) int {
	activeDays := make(map[string]bool, len(activities))
	for _, activity := range activities {
		day := timezone.DayKey(time.Unix(activity.CreatedTs, 0).In(now.Location()))
		activeDays[day] = true
	}

	streak := 0
	for i := 0; i < StreakLookbackDays; i++ {
		day := timezone.DayKey(now.AddDate(0, 0, -i))
		if !activeDays[day] {
			break
		}
		streak++
	}
	return streak
}
