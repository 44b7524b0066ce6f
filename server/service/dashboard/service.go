// Package dashboard assembles the learner-facing study overview: due-bucket
// classification, load statistics, streaks, and a study recommendation.
// Everything is computed on demand from the review record table and the
// activity log; nothing is pre-materialized.
package dashboard

import (
	"context"
	"log/slog"
	"time"

	apperrors "github.com/cardloop/cardloop/server/internal/errors"
	"github.com/cardloop/cardloop/server/internal/observability"
	"github.com/cardloop/cardloop/server/timezone"
	"github.com/cardloop/cardloop/store"
)

// Dashboard is the full study overview for one learner.
type Dashboard struct {
	Buckets        *Buckets        `json:"buckets"`
	Stats          *StudyStats     `json:"stats"`
	Recommendation *Recommendation `json:"recommendation"`
}

// Service computes study dashboards.
type Service interface {
	// GetDashboard classifies the member's cards, aggregates stats, and
	// derives a recommendation, all relative to now.
	GetDashboard(ctx context.Context, memberID int32, now time.Time) (*Dashboard, error)
}

// Store is the interface for store operations needed by the dashboard service.
type Store interface {
	GetMember(ctx context.Context, find *store.FindMember) (*store.Member, error)
	ListReviewRecords(ctx context.Context, find *store.FindReviewRecord) ([]*store.ReviewRecord, error)
	ListReviewActivities(ctx context.Context, find *store.FindReviewActivity) ([]*store.ReviewActivity, error)
	CountReviewActivities(ctx context.Context, find *store.FindReviewActivity) (int32, error)
}

type service struct {
	store Store
}

// NewService creates a new dashboard service.
func NewService(store Store) Service {
	return &service{store: store}
}

func (s *service) GetDashboard(ctx context.Context, memberID int32, now time.Time) (*Dashboard, error) {
	normalStatus := store.Normal
	member, err := s.store.GetMember(ctx, &store.FindMember{ID: &memberID, RowStatus: &normalStatus})
	if err != nil {
		return nil, apperrors.Internal("failed to get member", err)
	}
	if member == nil {
		return nil, apperrors.MemberNotFound(memberID)
	}

	todayStart := timezone.StartOfDay(now)

	// Only records inside the five-day outlook can land in a bucket, so the
	// due_ts index bounds the scan.
	horizon := todayStart.AddDate(0, 0, 6).Unix()
	records, err := s.store.ListReviewRecords(ctx, &store.FindReviewRecord{
		MemberID:    &memberID,
		DueTsBefore: &horizon,
	})
	if err != nil {
		return nil, apperrors.Internal("failed to list review records", err)
	}

	buckets := Classify(records, now)

	todayStartTs := todayStart.Unix()
	tomorrowStartTs := todayStart.AddDate(0, 0, 1).Unix()
	completedToday, err := s.store.CountReviewActivities(ctx, &store.FindReviewActivity{
		MemberID:        &memberID,
		CreatedTsAfter:  &todayStartTs,
		CreatedTsBefore: &tomorrowStartTs,
	})
	if err != nil {
		return nil, apperrors.Internal("failed to count review activities", err)
	}

	lookbackTs := todayStart.AddDate(0, 0, -StreakLookbackDays).Unix()
	activities, err := s.store.ListReviewActivities(ctx, &store.FindReviewActivity{
		MemberID:       &memberID,
		CreatedTsAfter: &lookbackTs,
	})
	if err != nil {
		return nil, apperrors.Internal("failed to list review activities", err)
	}

	stats := Aggregate(buckets, int(completedToday), CurrentStreak(activities, now))
	recommendation := Recommend(stats)

	observability.FromContext(ctx).Debug("dashboard computed",
		slog.Int("member_id", int(memberID)),
		slog.Int("total_active_cards", stats.TotalActiveCards),
		slog.Int("completed_today", stats.CompletedTodayCount))

	return &Dashboard{
		Buckets:        buckets,
		Stats:          stats,
		Recommendation: recommendation,
	}, nil
}
