// Package review implements review completion for the spaced-repetition
// scheduler: it normalizes the learner's outcome label, applies the interval
// policy, and persists the resulting schedule with an optimistic-lock check
// so concurrent completions for the same card never silently lose an update.
package review

import (
	"context"
	"errors"
	"log/slog"
	"time"

	apperrors "github.com/cardloop/cardloop/server/internal/errors"
	"github.com/cardloop/cardloop/server/internal/observability"
	"github.com/cardloop/cardloop/store"
)

// Service handles review completion.
type Service interface {
	// CompleteReview records one finished review and returns the updated
	// schedule for the card.
	CompleteReview(ctx context.Context, memberID, cardID int32, outcome string, now time.Time) (*store.ReviewRecord, error)
}

// Store is the interface for store operations needed by the review service.
type Store interface {
	GetMember(ctx context.Context, find *store.FindMember) (*store.Member, error)
	GetCard(ctx context.Context, find *store.FindCard) (*store.Card, error)
	GetReviewRecord(ctx context.Context, find *store.FindReviewRecord) (*store.ReviewRecord, error)
	UpsertReviewRecord(ctx context.Context, upsert *store.UpsertReviewRecord) (*store.ReviewRecord, error)
	CreateReviewActivity(ctx context.Context, create *store.ReviewActivity) (*store.ReviewActivity, error)
}

type service struct {
	store Store
}

// NewService creates a new review service.
func NewService(store Store) Service {
	return &service{store: store}
}

func (s *service) CompleteReview(ctx context.Context, memberID, cardID int32, rawOutcome string, now time.Time) (*store.ReviewRecord, error) {
	outcome, ok := ParseOutcome(rawOutcome)
	if !ok {
		return nil, apperrors.UnrecognizedOutcome(rawOutcome)
	}

	// Identity checks happen before any mutation.
	normalStatus := store.Normal
	member, err := s.store.GetMember(ctx, &store.FindMember{ID: &memberID, RowStatus: &normalStatus})
	if err != nil {
		return nil, apperrors.Internal("failed to get member", err)
	}
	if member == nil {
		return nil, apperrors.MemberNotFound(memberID)
	}

	card, err := s.store.GetCard(ctx, &store.FindCard{ID: &cardID, CreatorID: &memberID, RowStatus: &normalStatus})
	if err != nil {
		return nil, apperrors.Internal("failed to get card", err)
	}
	if card == nil {
		return nil, apperrors.CardNotFound(cardID)
	}

	record, err := s.store.GetReviewRecord(ctx, &store.FindReviewRecord{MemberID: &memberID, CardID: &cardID})
	if err != nil {
		return nil, apperrors.Internal("failed to get review record", err)
	}

	var currentRepetitions, totalReviews, expectedVersion int32
	if record != nil {
		currentRepetitions = record.Repetitions
		totalReviews = record.TotalReviews
		expectedVersion = record.RowVersion
	}

	intervalDays := NextInterval(outcome, currentRepetitions)
	lastReviewedTs := now.Unix()
	canonical := outcome.String()

	updated, err := s.store.UpsertReviewRecord(ctx, &store.UpsertReviewRecord{
		MemberID:        memberID,
		CardID:          cardID,
		DueTs:           now.AddDate(0, 0, int(intervalDays)).Unix(),
		IntervalDays:    intervalDays,
		LastReviewedTs:  &lastReviewedTs,
		LastOutcome:     &canonical,
		Repetitions:     NextRepetitions(outcome, currentRepetitions),
		TotalReviews:    totalReviews + 1,
		ExpectedVersion: expectedVersion,
	})
	if err != nil {
		if errors.Is(err, store.ErrVersionConflict) {
			return nil, apperrors.ConcurrentModification(memberID, cardID)
		}
		return nil, apperrors.Internal("failed to upsert review record", err)
	}

	// The activity log backs the streak and completed-today count. A failure
	// here does not undo the schedule update; the review itself succeeded.
	if _, err := s.store.CreateReviewActivity(ctx, &store.ReviewActivity{
		MemberID:  memberID,
		CardID:    cardID,
		CreatedTs: now.Unix(),
	}); err != nil {
		observability.FromContext(ctx).Warn("failed to record review activity",
			slog.Int("member_id", int(memberID)),
			slog.Int("card_id", int(cardID)),
			slog.Any("error", err))
	}

	observability.FromContext(ctx).Debug("review completed",
		slog.Int("member_id", int(memberID)),
		slog.Int("card_id", int(cardID)),
		slog.String("outcome", canonical),
		slog.Int("interval_days", int(updated.IntervalDays)))

	return updated, nil
}
