package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "github.com/cardloop/cardloop/server/internal/errors"
	"github.com/cardloop/cardloop/server/internal/observability"
	"github.com/cardloop/cardloop/store"
)

// CompleteReviewRequest is the request body for POST /api/v1/reviews.
type CompleteReviewRequest struct {
	MemberID int32  `json:"member_id" validate:"required,gt=0"`
	CardID   int32  `json:"card_id" validate:"required,gt=0"`
	Outcome  string `json:"outcome" validate:"required"`
}

// ScheduleResponse is the wire form of a review record.
type ScheduleResponse struct {
	MemberID       int32   `json:"member_id"`
	CardID         int32   `json:"card_id"`
	DueAt          string  `json:"due_at"`
	IntervalDays   int32   `json:"interval_days"`
	LastReviewedAt *string `json:"last_reviewed_at,omitempty"`
	LastOutcome    *string `json:"last_outcome,omitempty"`
	Repetitions    int32   `json:"repetitions"`
	TotalReviews   int32   `json:"total_reviews"`
}

// CompleteReview handles POST /api/v1/reviews.
func (s *APIV1Service) CompleteReview(c echo.Context) error {
	request := &CompleteReviewRequest{}
	if err := c.Bind(request); err != nil {
		return c.JSON(http.StatusBadRequest, &errorResponse{
			Code:    "INVALID_ARGUMENT",
			Message: "malformed request body",
		})
	}
	if err := s.validate.Struct(request); err != nil {
		return c.JSON(http.StatusBadRequest, &errorResponse{
			Code:    "INVALID_ARGUMENT",
			Message: err.Error(),
		})
	}

	if !s.rateLimiter.Allow(fmt.Sprintf("review:%d", request.MemberID)) {
		return c.JSON(http.StatusTooManyRequests, &errorResponse{
			Code:    "RATE_LIMITED",
			Message: "too many review submissions, slow down",
		})
	}

	now := time.Now().In(s.Profile.Location())
	record, err := s.ReviewService.CompleteReview(c.Request().Context(), request.MemberID, request.CardID, request.Outcome, now)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrCodeConcurrentModification) {
			observability.GlobalMetrics().RecordVersionConflict()
		}
		return replyError(c, err)
	}

	observability.GlobalMetrics().RecordReviewCompleted()
	return c.JSON(http.StatusOK, convertScheduleResponse(record, s.Profile.Location()))
}

func convertScheduleResponse(record *store.ReviewRecord, loc *time.Location) *ScheduleResponse {
	response := &ScheduleResponse{
		MemberID:     record.MemberID,
		CardID:       record.CardID,
		DueAt:        record.DueAt().In(loc).Format(time.RFC3339),
		IntervalDays: record.IntervalDays,
		LastOutcome:  record.LastOutcome,
		Repetitions:  record.Repetitions,
		TotalReviews: record.TotalReviews,
	}
	if lastReviewedAt := record.LastReviewedAt(); lastReviewedAt != nil {
		formatted := lastReviewedAt.In(loc).Format(time.RFC3339)
		response.LastReviewedAt = &formatted
	}
	return response
}
