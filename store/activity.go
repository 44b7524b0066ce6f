package store

import "context"

// ReviewActivity is one completed-review event. Unlike ReviewRecord this is
// an append-only log; it backs the completed-today count and the streak.
type ReviewActivity struct {
	ID        int32
	MemberID  int32
	CardID    int32
	CreatedTs int64
}

// FindReviewActivity is the find condition for review activity.
type FindReviewActivity struct {
	MemberID *int32
	CardID   *int32

	// Time range filters (inclusive start, exclusive end)
	CreatedTsAfter  *int64
	CreatedTsBefore *int64

	// Pagination
	Limit  *int
	Offset *int
}

// CreateReviewActivity appends a completion event to the activity log.
func (s *Store) CreateReviewActivity(ctx context.Context, create *ReviewActivity) (*ReviewActivity, error) {
	return s.driver.CreateReviewActivity(ctx, create)
}

// ListReviewActivities lists activity entries with filter, newest first.
func (s *Store) ListReviewActivities(ctx context.Context, find *FindReviewActivity) ([]*ReviewActivity, error) {
	return s.driver.ListReviewActivities(ctx, find)
}

// CountReviewActivities counts activity entries matching the filter.
func (s *Store) CountReviewActivities(ctx context.Context, find *FindReviewActivity) (int32, error) {
	return s.driver.CountReviewActivities(ctx, find)
}
