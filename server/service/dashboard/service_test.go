package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/cardloop/cardloop/server/internal/errors"
	"github.com/cardloop/cardloop/store"
)

// MockStoreForDashboard is a mock implementation of the Store interface for testing.
type MockStoreForDashboard struct {
	members    []*store.Member
	records    []*store.ReviewRecord
	activities []*store.ReviewActivity
}

func (m *MockStoreForDashboard) GetMember(ctx context.Context, find *store.FindMember) (*store.Member, error) {
	for _, member := range m.members {
		if find.ID != nil && member.ID != *find.ID {
			continue
		}
		if find.RowStatus != nil && member.RowStatus != *find.RowStatus {
			continue
		}
		return member, nil
	}
	return nil, nil
}

func (m *MockStoreForDashboard) ListReviewRecords(ctx context.Context, find *store.FindReviewRecord) ([]*store.ReviewRecord, error) {
	result := make([]*store.ReviewRecord, 0)
	for _, record := range m.records {
		if find.MemberID != nil && record.MemberID != *find.MemberID {
			continue
		}
		if find.DueTsBefore != nil && record.DueTs >= *find.DueTsBefore {
			continue
		}
		result = append(result, record)
	}
	return result, nil
}

func (m *MockStoreForDashboard) ListReviewActivities(ctx context.Context, find *store.FindReviewActivity) ([]*store.ReviewActivity, error) {
	result := make([]*store.ReviewActivity, 0)
	for _, activity := range m.activities {
		if !matchActivity(activity, find) {
			continue
		}
		result = append(result, activity)
	}
	return result, nil
}

func (m *MockStoreForDashboard) CountReviewActivities(ctx context.Context, find *store.FindReviewActivity) (int32, error) {
	var count int32
	for _, activity := range m.activities {
		if matchActivity(activity, find) {
			count++
		}
	}
	return count, nil
}

func matchActivity(activity *store.ReviewActivity, find *store.FindReviewActivity) bool {
	if find.MemberID != nil && activity.MemberID != *find.MemberID {
		return false
	}
	if find.CreatedTsAfter != nil && activity.CreatedTs < *find.CreatedTsAfter {
		return false
	}
	if find.CreatedTsBefore != nil && activity.CreatedTs >= *find.CreatedTsBefore {
		return false
	}
	return true
}

func TestGetDashboard(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	mockStore := &MockStoreForDashboard{
		members: []*store.Member{
			{ID: 1, UID: "member-1", Username: "alice", RowStatus: store.Normal},
		},
		records: []*store.ReviewRecord{
			{ID: 1, MemberID: 1, CardID: 1, DueTs: now.AddDate(0, 0, -2).Unix()},
			{ID: 2, MemberID: 1, CardID: 2, DueTs: now.Unix()},
			{ID: 3, MemberID: 1, CardID: 3, DueTs: now.AddDate(0, 0, 1).Unix()},
			{ID: 4, MemberID: 1, CardID: 4, DueTs: now.AddDate(0, 0, 4).Unix()},
			// Another member's record never leaks in.
			{ID: 5, MemberID: 2, CardID: 5, DueTs: now.Unix()},
		},
		activities: []*store.ReviewActivity{
			{ID: 1, MemberID: 1, CardID: 1, CreatedTs: now.Add(-time.Hour).Unix()},
			{ID: 2, MemberID: 1, CardID: 2, CreatedTs: now.AddDate(0, 0, -1).Unix()},
		},
	}

	svc := NewService(mockStore)
	dash, err := svc.GetDashboard(ctx, 1, now)
	require.NoError(t, err)

	assert.Equal(t, 1, dash.Stats.OverdueCount)
	assert.Equal(t, 1, dash.Stats.TodayCount)
	assert.Equal(t, 1, dash.Stats.TomorrowCount)
	assert.Equal(t, 1, dash.Stats.Within5DaysCount)
	assert.Equal(t, 4, dash.Stats.TotalActiveCards)
	assert.Equal(t, 1, dash.Stats.CompletedTodayCount)
	assert.Equal(t, 2, dash.Stats.CurrentStreakDays)

	require.NotNil(t, dash.Recommendation)
	assert.True(t, dash.Recommendation.ShouldStudyToday)
}

func TestGetDashboardEmptyLearner(t *testing.T) {
	ctx := context.Background()
	mockStore := &MockStoreForDashboard{
		members: []*store.Member{
			{ID: 1, UID: "member-1", Username: "alice", RowStatus: store.Normal},
		},
	}

	svc := NewService(mockStore)
	dash, err := svc.GetDashboard(ctx, 1, time.Now())
	require.NoError(t, err)

	assert.Zero(t, dash.Stats.TotalActiveCards)
	assert.Zero(t, dash.Stats.CurrentStreakDays)
	assert.False(t, dash.Recommendation.ShouldStudyToday)
	assert.Empty(t, dash.Buckets.Today)
}

func TestGetDashboardMemberNotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&MockStoreForDashboard{})

	_, err := svc.GetDashboard(ctx, 42, time.Now())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeMemberNotFound))
}
