package review

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/cardloop/cardloop/server/internal/errors"
	"github.com/cardloop/cardloop/store"
)

// MockStoreForReview is a mock implementation of the Store interface for testing.
type MockStoreForReview struct {
	members    []*store.Member
	cards      []*store.Card
	records    []*store.ReviewRecord
	activities []*store.ReviewActivity

	// forceConflict makes every upsert fail with a version conflict.
	forceConflict bool
}

func (m *MockStoreForReview) GetMember(ctx context.Context, find *store.FindMember) (*store.Member, error) {
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

func (m *MockStoreForReview) GetCard(ctx context.Context, find *store.FindCard) (*store.Card, error) {
	for _, card := range m.cards {
		if find.ID != nil && card.ID != *find.ID {
			continue
		}
		if find.CreatorID != nil && card.CreatorID != *find.CreatorID {
			continue
		}
		if find.RowStatus != nil && card.RowStatus != *find.RowStatus {
			continue
		}
		return card, nil
	}
	return nil, nil
}

func (m *MockStoreForReview) GetReviewRecord(ctx context.Context, find *store.FindReviewRecord) (*store.ReviewRecord, error) {
	for _, record := range m.records {
		if find.MemberID != nil && record.MemberID != *find.MemberID {
			continue
		}
		if find.CardID != nil && record.CardID != *find.CardID {
			continue
		}
		return record, nil
	}
	return nil, nil
}

func (m *MockStoreForReview) UpsertReviewRecord(ctx context.Context, upsert *store.UpsertReviewRecord) (*store.ReviewRecord, error) {
	if m.forceConflict {
		return nil, store.ErrVersionConflict
	}

	for _, record := range m.records {
		if record.MemberID == upsert.MemberID && record.CardID == upsert.CardID {
			if upsert.ExpectedVersion != record.RowVersion {
				return nil, store.ErrVersionConflict
			}
			record.DueTs = upsert.DueTs
			record.IntervalDays = upsert.IntervalDays
			record.LastReviewedTs = upsert.LastReviewedTs
			record.LastOutcome = upsert.LastOutcome
			record.Repetitions = upsert.Repetitions
			record.TotalReviews = upsert.TotalReviews
			record.RowVersion++
			return record, nil
		}
	}

	if upsert.ExpectedVersion != 0 {
		return nil, store.ErrVersionConflict
	}

	record := &store.ReviewRecord{
		ID:             int32(len(m.records) + 1),
		MemberID:       upsert.MemberID,
		CardID:         upsert.CardID,
		DueTs:          upsert.DueTs,
		IntervalDays:   upsert.IntervalDays,
		LastReviewedTs: upsert.LastReviewedTs,
		LastOutcome:    upsert.LastOutcome,
		Repetitions:    upsert.Repetitions,
		TotalReviews:   upsert.TotalReviews,
		RowVersion:     1,
	}
	m.records = append(m.records, record)
	return record, nil
}

func (m *MockStoreForReview) CreateReviewActivity(ctx context.Context, create *store.ReviewActivity) (*store.ReviewActivity, error) {
	create.ID = int32(len(m.activities) + 1)
	m.activities = append(m.activities, create)
	return create, nil
}

func newMockStore() *MockStoreForReview {
	return &MockStoreForReview{
		members: []*store.Member{
			{ID: 1, UID: "member-1", Username: "alice", RowStatus: store.Normal},
		},
		cards: []*store.Card{
			{ID: 10, UID: "card-10", CreatorID: 1, Front: "bonjour", RowStatus: store.Normal},
		},
	}
}

func TestCompleteReviewFirstReview(t *testing.T) {
	ctx := context.Background()
	mockStore := newMockStore()
	svc := NewService(mockStore)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	record, err := svc.CompleteReview(ctx, 1, 10, "easy", now)
	require.NoError(t, err)

	assert.Equal(t, int32(7), record.IntervalDays)
	assert.Equal(t, now.AddDate(0, 0, 7).Unix(), record.DueTs)
	assert.Equal(t, int32(1), record.TotalReviews)
	assert.Equal(t, int32(1), record.Repetitions)
	require.NotNil(t, record.LastOutcome)
	assert.Equal(t, "EASY", *record.LastOutcome)
	require.NotNil(t, record.LastReviewedTs)
	assert.Equal(t, now.Unix(), *record.LastReviewedTs)

	// Exactly one activity entry per completion.
	require.Len(t, mockStore.activities, 1)
	assert.Equal(t, int32(1), mockStore.activities[0].MemberID)
	assert.Equal(t, int32(10), mockStore.activities[0].CardID)
}

func TestCompleteReviewHardResetsRepetitions(t *testing.T) {
	ctx := context.Background()
	mockStore := newMockStore()
	svc := NewService(mockStore)

	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	// Build up three successful reviews.
	for i := 0; i < 3; i++ {
		_, err := svc.CompleteReview(ctx, 1, 10, "good", now.AddDate(0, 0, i))
		require.NoError(t, err)
	}

	record, err := svc.CompleteReview(ctx, 1, 10, "hard", now.AddDate(0, 0, 3))
	require.NoError(t, err)

	assert.Equal(t, int32(1), record.IntervalDays)
	assert.Equal(t, int32(0), record.Repetitions)
	assert.Equal(t, int32(4), record.TotalReviews)

	// The next non-hard review computes from a zero repetition count.
	record, err = svc.CompleteReview(ctx, 1, 10, "good", now.AddDate(0, 0, 4))
	require.NoError(t, err)
	assert.Equal(t, int32(3), record.IntervalDays)
	assert.Equal(t, int32(1), record.Repetitions)
}

func TestCompleteReviewSynonymLabels(t *testing.T) {
	ctx := context.Background()
	mockStore := newMockStore()
	svc := NewService(mockStore)

	now := time.Now()
	record, err := svc.CompleteReview(ctx, 1, 10, "보통", now)
	require.NoError(t, err)
	require.NotNil(t, record.LastOutcome)
	assert.Equal(t, "CONFUSE", *record.LastOutcome)
}

func TestCompleteReviewUnrecognizedOutcome(t *testing.T) {
	ctx := context.Background()
	mockStore := newMockStore()
	svc := NewService(mockStore)

	_, err := svc.CompleteReview(ctx, 1, 10, "banana", time.Now())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnrecognizedOutcome))

	// No mutation happened.
	assert.Empty(t, mockStore.records)
	assert.Empty(t, mockStore.activities)
}

func TestCompleteReviewMemberNotFound(t *testing.T) {
	ctx := context.Background()
	mockStore := newMockStore()
	svc := NewService(mockStore)

	_, err := svc.CompleteReview(ctx, 999, 10, "easy", time.Now())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeMemberNotFound))
}

func TestCompleteReviewCardNotFound(t *testing.T) {
	ctx := context.Background()
	mockStore := newMockStore()
	svc := NewService(mockStore)

	_, err := svc.CompleteReview(ctx, 1, 999, "easy", time.Now())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeCardNotFound))
}

func TestCompleteReviewForeignCardRejected(t *testing.T) {
	ctx := context.Background()
	mockStore := newMockStore()
	mockStore.members = append(mockStore.members, &store.Member{ID: 2, UID: "member-2", Username: "bob", RowStatus: store.Normal})
	svc := NewService(mockStore)

	// Card 10 belongs to member 1; member 2 cannot review it.
	_, err := svc.CompleteReview(ctx, 2, 10, "easy", time.Now())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeCardNotFound))
}

func TestCompleteReviewVersionConflict(t *testing.T) {
	ctx := context.Background()
	mockStore := newMockStore()
	mockStore.forceConflict = true
	svc := NewService(mockStore)

	_, err := svc.CompleteReview(ctx, 1, 10, "easy", time.Now())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeConcurrentModification))
}
