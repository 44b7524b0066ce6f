package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecommend(t *testing.T) {
	tests := []struct {
		name        string
		stats       *StudyStats
		shouldStudy bool
		contains    string
	}{
		{
			name:        "all caught up",
			stats:       &StudyStats{OverdueCount: 0, TodayCount: 0},
			shouldStudy: false,
			contains:    "caught up",
		},
		{
			name:        "large overdue backlog",
			stats:       &StudyStats{OverdueCount: 11, TodayCount: 0},
			shouldStudy: true,
			contains:    "overdue",
		},
		{
			name:        "heavy load without backlog",
			stats:       &StudyStats{OverdueCount: 5, TodayCount: 16},
			shouldStudy: true,
			contains:    "smaller sessions",
		},
		{
			name:        "light load",
			stats:       &StudyStats{OverdueCount: 1, TodayCount: 2},
			shouldStudy: true,
			contains:    "Start now",
		},
		{
			name:        "upcoming cards only",
			stats:       &StudyStats{TomorrowCount: 5, Within5DaysCount: 12},
			shouldStudy: false,
			contains:    "caught up",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Recommend(tt.stats)
			assert.Equal(t, tt.shouldStudy, rec.ShouldStudyToday)
			assert.Contains(t, rec.Message, tt.contains)
		})
	}
}

func TestRecommendRuleOrder(t *testing.T) {
	// Overdue backlog wins over the heavy-load rule even when both match.
	rec := Recommend(&StudyStats{OverdueCount: 15, TodayCount: 15})
	assert.True(t, rec.ShouldStudyToday)
	assert.Contains(t, rec.Message, "overdue")

	// Exactly at the thresholds the lighter rules apply.
	rec = Recommend(&StudyStats{OverdueCount: 10, TodayCount: 10})
	assert.Contains(t, rec.Message, "Start now")

	rec = Recommend(&StudyStats{OverdueCount: 10, TodayCount: 11})
	assert.Contains(t, rec.Message, "smaller sessions")
}
