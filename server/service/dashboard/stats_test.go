package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cardloop/cardloop/store"
)

func TestAggregateCounts(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	records := []*store.ReviewRecord{
		recordDueAt(1, now.AddDate(0, 0, -2)), // overdue
		recordDueAt(2, now.AddDate(0, 0, -1)), // yesterday
		recordDueAt(3, now),                   // today
		recordDueAt(4, now.AddDate(0, 0, 1)),  // tomorrow
		recordDueAt(5, now.AddDate(0, 0, 2)),  // within3days + within5days
		recordDueAt(6, now.AddDate(0, 0, 5)),  // within5days only
	}

	stats := Aggregate(Classify(records, now), 4, 2)

	assert.Equal(t, 1, stats.OverdueCount)
	assert.Equal(t, 1, stats.YesterdayCount)
	assert.Equal(t, 1, stats.TodayCount)
	assert.Equal(t, 1, stats.TomorrowCount)
	assert.Equal(t, 1, stats.Within3DaysCount)
	assert.Equal(t, 2, stats.Within5DaysCount)
	// Six distinct cards; the within3days view is not double counted.
	assert.Equal(t, 6, stats.TotalActiveCards)
	assert.Equal(t, 4, stats.CompletedTodayCount)
	assert.Equal(t, 2, stats.CurrentStreakDays)
}

func TestAggregateEmpty(t *testing.T) {
	stats := Aggregate(Classify(nil, time.Now()), 0, 0)

	assert.Zero(t, stats.TotalActiveCards)
	assert.Zero(t, stats.CompletedTodayCount)
	assert.Zero(t, stats.CurrentStreakDays)
}

func activityAt(ts time.Time) *store.ReviewActivity {
	return &store.ReviewActivity{MemberID: 1, CardID: 1, CreatedTs: ts.Unix()}
}

func TestCurrentStreak(t *testing.T) {
	now := time.Date(2024, 3, 15, 20, 0, 0, 0, time.UTC)

	t.Run("no activity", func(t *testing.T) {
		assert.Equal(t, 0, CurrentStreak(nil, now))
	})

	t.Run("today only", func(t *testing.T) {
		activities := []*store.ReviewActivity{activityAt(now.Add(-2 * time.Hour))}
		assert.Equal(t, 1, CurrentStreak(activities, now))
	})

	t.Run("three consecutive days", func(t *testing.T) {
		activities := []*store.ReviewActivity{
			activityAt(now),
			activityAt(now.AddDate(0, 0, -1)),
			activityAt(now.AddDate(0, 0, -2)),
		}
		assert.Equal(t, 3, CurrentStreak(activities, now))
	})

	t.Run("gap breaks the streak", func(t *testing.T) {
		activities := []*store.ReviewActivity{
			activityAt(now),
			activityAt(now.AddDate(0, 0, -1)),
			// Day -2 missing.
			activityAt(now.AddDate(0, 0, -3)),
			activityAt(now.AddDate(0, 0, -4)),
		}
		assert.Equal(t, 2, CurrentStreak(activities, now))
	})

	t.Run("yesterday but not today", func(t *testing.T) {
		activities := []*store.ReviewActivity{
			activityAt(now.AddDate(0, 0, -1)),
			activityAt(now.AddDate(0, 0, -2)),
		}
		assert.Equal(t, 0, CurrentStreak(activities, now))
	})

	t.Run("multiple reviews on one day count once", func(t *testing.T) {
		activities := []*store.ReviewActivity{
			activityAt(now),
			activityAt(now.Add(-time.Hour)),
			activityAt(now.Add(-5 * time.Hour)),
		}
		assert.Equal(t, 1, CurrentStreak(activities, now))
	})

	t.Run("capped at lookback window", func(t *testing.T) {
		activities := make([]*store.ReviewActivity, 0, 60)
		for i := 0; i < 60; i++ {
			activities = append(activities, activityAt(now.AddDate(0, 0, -i)))
		}
		assert.Equal(t, StreakLookbackDays, CurrentStreak(activities, now))
	})
}

func TestCurrentStreakDeterministic(t *testing.T) {
	now := time.Date(2024, 3, 15, 20, 0, 0, 0, time.UTC)
	activities := []*store.ReviewActivity{
		activityAt(now),
		activityAt(now.AddDate(0, 0, -1)),
	}

	first := CurrentStreak(activities, now)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, CurrentStreak(activities, now))
	}
}
