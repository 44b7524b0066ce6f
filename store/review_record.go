package store

import (
	"context"
	"errors"
	"time"
)

// ErrVersionConflict is returned by UpsertReviewRecord when the record's
// optimistic-lock stamp no longer matches, meaning a concurrent completion
// won the write. Callers retry by re-reading the record.
var ErrVersionConflict = errors.New("store: review record version conflict")

// ReviewRecord is the scheduling state for one (member, card) pair.
// It is created lazily on first review and updated in place thereafter;
// there is exactly one row per pair, not an append-only log.
type ReviewRecord struct {
	ID       int32
	MemberID int32
	CardID   int32

	// DueTs is the timestamp at which the card becomes eligible for review.
	DueTs int64
	// IntervalDays is the number of days used to compute DueTs from the
	// last review time. Always >= 1.
	IntervalDays int32
	// LastReviewedTs is nil for a card that has never been reviewed.
	LastReviewedTs *int64
	// LastOutcome is the canonical outcome label of the last review.
	LastOutcome *string
	// Repetitions counts consecutive non-hard reviews and drives interval
	// growth. Resets to zero when the learner reports the card as hard.
	Repetitions int32
	// TotalReviews is the monotone count of completed reviews. Zero means
	// the card is new.
	TotalReviews int32
	// RowVersion is the optimistic-lock stamp, starting at 1 on insert and
	// incremented on every successful update.
	RowVersion int32
}

// DueAt returns the due timestamp as time.Time.
func (r *ReviewRecord) DueAt() time.Time {
	return time.Unix(r.DueTs, 0)
}

// LastReviewedAt returns the last review time, or nil for a new card.
func (r *ReviewRecord) LastReviewedAt() *time.Time {
	if r.LastReviewedTs == nil {
		return nil
	}
	t := time.Unix(*r.LastReviewedTs, 0)
	return &t
}

// IsNew reports whether the card has never been reviewed.
func (r *ReviewRecord) IsNew() bool {
	return r.TotalReviews == 0
}

// FindReviewRecord is the find condition for review record.
type FindReviewRecord struct {
	ID       *int32
	MemberID *int32
	CardID   *int32

	// DueTsBefore limits results to records due strictly before the given
	// timestamp. Served by the (member_id, due_ts) index.
	DueTsBefore *int64

	// Pagination
	Limit  *int
	Offset *int
}

// UpsertReviewRecord is the upsert request for review record.
// ExpectedVersion zero means "insert a fresh record"; any other value is
// matched against the stored RowVersion before updating.
type UpsertReviewRecord struct {
	MemberID int32
	CardID   int32

	DueTs          int64
	IntervalDays   int32
	LastReviewedTs *int64
	LastOutcome    *string
	Repetitions    int32
	TotalReviews   int32

	ExpectedVersion int32
}

// DeleteReviewRecord is the delete request for review record.
type DeleteReviewRecord struct {
	ID       *int32
	MemberID *int32
	CardID   *int32
}

// UpsertReviewRecord creates or conditionally updates a review record.
// Returns ErrVersionConflict when the optimistic-lock check fails.
func (s *Store) UpsertReviewRecord(ctx context.Context, upsert *UpsertReviewRecord) (*ReviewRecord, error) {
	return s.driver.UpsertReviewRecord(ctx, upsert)
}

// ListReviewRecords lists review records with filter, ordered by due_ts.
func (s *Store) ListReviewRecords(ctx context.Context, find *FindReviewRecord) ([]*ReviewRecord, error) {
	return s.driver.ListReviewRecords(ctx, find)
}

// GetReviewRecord gets a single review record by find condition.
func (s *Store) GetReviewRecord(ctx context.Context, find *FindReviewRecord) (*ReviewRecord, error) {
	list, err := s.driver.ListReviewRecords(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// DeleteReviewRecord deletes review records matching the condition.
func (s *Store) DeleteReviewRecord(ctx context.Context, delete *DeleteReviewRecord) error {
	return s.driver.DeleteReviewRecord(ctx, delete)
}
