package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardloop/cardloop/store"
)

func recordDueAt(id int32, dueAt time.Time) *store.ReviewRecord {
	return &store.ReviewRecord{ID: id, MemberID: 1, CardID: id, DueTs: dueAt.Unix()}
}

func TestClassifyBucketBoundaries(t *testing.T) {
	// Noon, so day boundaries sit on both sides of now.
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	day := func(offset int, hour int) time.Time {
		return time.Date(2024, 3, 15+offset, hour, 0, 0, 0, time.UTC)
	}

	records := []*store.ReviewRecord{
		recordDueAt(1, day(-3, 8)),  // overdue, 3 days past
		recordDueAt(2, day(-2, 23)), // overdue, 2 days past
		recordDueAt(3, day(-1, 10)), // yesterday
		recordDueAt(4, day(0, 0)),   // today, midnight
		recordDueAt(5, day(0, 23)),  // today, late
		recordDueAt(6, day(1, 6)),   // tomorrow
		recordDueAt(7, day(2, 12)),  // within3days (and within5days)
		recordDueAt(8, day(3, 12)),  // within3days (and within5days)
		recordDueAt(9, day(4, 12)),  // within5days only
		recordDueAt(10, day(5, 12)), // within5days only
		recordDueAt(11, day(6, 12)), // beyond the horizon, unbucketed
	}

	buckets := Classify(records, now)

	assert.Equal(t, []int32{1, 2}, recordIDs(buckets.Overdue))
	assert.Equal(t, []int32{3}, recordIDs(buckets.Yesterday))
	assert.Equal(t, []int32{4, 5}, recordIDs(buckets.Today))
	assert.Equal(t, []int32{6}, recordIDs(buckets.Tomorrow))
	assert.Equal(t, []int32{7, 8}, recordIDs(buckets.Within3Days))
	assert.Equal(t, []int32{7, 8, 9, 10}, recordIDs(buckets.Within5Days))
}

func TestClassifyWithin5DaysSupersetOfWithin3Days(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	records := []*store.ReviewRecord{
		recordDueAt(1, now.AddDate(0, 0, 2)),
		recordDueAt(2, now.AddDate(0, 0, 3)),
		recordDueAt(3, now.AddDate(0, 0, 4)),
	}

	buckets := Classify(records, now)

	within5 := recordIDs(buckets.Within5Days)
	for _, id := range recordIDs(buckets.Within3Days) {
		assert.Contains(t, within5, id)
	}
}

func TestClassifyLongOverdueFoldsIntoToday(t *testing.T) {
	// A card more than three days past due is no longer "overdue" by the
	// window definition; it still needs attention today.
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	records := []*store.ReviewRecord{
		recordDueAt(1, now.AddDate(0, 0, -10)),
		recordDueAt(2, now.AddDate(0, 0, -4)),
	}

	buckets := Classify(records, now)

	assert.Empty(t, buckets.Overdue)
	assert.Equal(t, []int32{1, 2}, recordIDs(buckets.Today))
}

func TestClassifyIdempotent(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	records := []*store.ReviewRecord{
		recordDueAt(1, now.AddDate(0, 0, -2)),
		recordDueAt(2, now.AddDate(0, 0, -1)),
		recordDueAt(3, now),
		recordDueAt(4, now.AddDate(0, 0, 1)),
		recordDueAt(5, now.AddDate(0, 0, 3)),
		recordDueAt(6, now.AddDate(0, 0, 5)),
	}

	first := Classify(records, now)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Classify(records, now))
	}

	// Classification reads the records without mutating them.
	assert.Equal(t, now.AddDate(0, 0, -2).Unix(), records[0].DueTs)
}

func TestClassifyEmptyInput(t *testing.T) {
	buckets := Classify(nil, time.Now())

	require.NotNil(t, buckets)
	assert.Empty(t, buckets.Overdue)
	assert.Empty(t, buckets.Yesterday)
	assert.Empty(t, buckets.Today)
	assert.Empty(t, buckets.Tomorrow)
	assert.Empty(t, buckets.Within3Days)
	assert.Empty(t, buckets.Within5Days)
	assert.Zero(t, buckets.DueNowCount())
}

func TestClassifyHonorsLocation(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	// 23:30 in Seoul; a card due 1 hour later is tomorrow there but still
	// the same UTC day.
	now := time.Date(2024, 3, 15, 23, 30, 0, 0, seoul)
	records := []*store.ReviewRecord{
		recordDueAt(1, now.Add(time.Hour)),
	}

	buckets := Classify(records, now)

	assert.Empty(t, buckets.Today)
	assert.Equal(t, []int32{1}, recordIDs(buckets.Tomorrow))
}

func recordIDs(records []*store.ReviewRecord) []int32 {
	ids := make([]int32, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}
	return ids
}
