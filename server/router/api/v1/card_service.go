package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cardloop/cardloop/internal/util"
	apperrors "github.com/cardloop/cardloop/server/internal/errors"
	"github.com/cardloop/cardloop/store"
)

// CreateCardRequest is the request body for POST /api/v1/cards.
type CreateCardRequest struct {
	CreatorID int32  `json:"creator_id" validate:"required,gt=0"`
	Front     string `json:"front" validate:"required,min=1"`
	Back      string `json:"back"`
}

// UpdateCardRequest is the request body for PATCH /api/v1/cards/:id.
type UpdateCardRequest struct {
	Front     *string `json:"front" validate:"omitempty,min=1"`
	Back      *string `json:"back"`
	RowStatus *string `json:"row_status" validate:"omitempty,oneof=NORMAL ARCHIVED"`
}

// CardResponse is the wire form of a card.
type CardResponse struct {
	ID        int32  `json:"id"`
	UID       string `json:"uid"`
	CreatorID int32  `json:"creator_id"`
	Front     string `json:"front"`
	Back      string `json:"back"`
	RowStatus string `json:"row_status"`
	CreatedAt string `json:"created_at"`
}

// CreateCard handles POST /api/v1/cards.
func (s *APIV1Service) CreateCard(c echo.Context) error {
	request := &CreateCardRequest{}
	if err := c.Bind(request); err != nil {
		return replyError(c, apperrors.InvalidArgument("malformed request body"))
	}
	if err := s.validate.Struct(request); err != nil {
		return replyError(c, apperrors.InvalidArgument(err.Error()))
	}

	ctx := c.Request().Context()
	member, err := s.Store.GetMember(ctx, &store.FindMember{ID: &request.CreatorID})
	if err != nil {
		return replyError(c, apperrors.Internal("failed to get member", err))
	}
	if member == nil {
		return replyError(c, apperrors.MemberNotFound(request.CreatorID))
	}

	card, err := s.Store.CreateCard(ctx, &store.Card{
		UID:       util.GenShortUID(),
		CreatorID: request.CreatorID,
		Front:     request.Front,
		Back:      request.Back,
	})
	if err != nil {
		return replyError(c, apperrors.Internal("failed to create card", err))
	}

	return c.JSON(http.StatusOK, convertCardResponse(card, s.Profile.Location()))
}

// ListCards handles GET /api/v1/cards?creator_id=N.
func (s *APIV1Service) ListCards(c echo.Context) error {
	creatorID, err := strconv.ParseInt(c.QueryParam("creator_id"), 10, 32)
	if err != nil || creatorID <= 0 {
		return replyError(c, apperrors.InvalidArgument("creator_id must be a positive integer"))
	}

	creatorID32 := int32(creatorID)
	find := &store.FindCard{CreatorID: &creatorID32}
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		limit, err := strconv.Atoi(limitParam)
		if err != nil || limit <= 0 {
			return replyError(c, apperrors.InvalidArgument("limit must be a positive integer"))
		}
		find.Limit = &limit
	}

	cards, err := s.Store.ListCards(c.Request().Context(), find)
	if err != nil {
		return replyError(c, apperrors.Internal("failed to list cards", err))
	}

	loc := s.Profile.Location()
	list := make([]*CardResponse, 0, len(cards))
	for _, card := range cards {
		list = append(list, convertCardResponse(card, loc))
	}
	return c.JSON(http.StatusOK, list)
}

// GetCard handles GET /api/v1/cards/:id.
func (s *APIV1Service) GetCard(c echo.Context) error {
	cardID, ok := pathID(c)
	if !ok {
		return replyError(c, apperrors.InvalidArgument("id must be a positive integer"))
	}

	card, err := s.Store.GetCard(c.Request().Context(), &store.FindCard{ID: &cardID})
	if err != nil {
		return replyError(c, apperrors.Internal("failed to get card", err))
	}
	if card == nil {
		return replyError(c, apperrors.CardNotFound(cardID))
	}

	return c.JSON(http.StatusOK, convertCardResponse(card, s.Profile.Location()))
}

// UpdateCard handles PATCH /api/v1/cards/:id.
func (s *APIV1Service) UpdateCard(c echo.Context) error {
	cardID, ok := pathID(c)
	if !ok {
		return replyError(c, apperrors.InvalidArgument("id must be a positive integer"))
	}

	request := &UpdateCardRequest{}
	if err := c.Bind(request); err != nil {
		return replyError(c, apperrors.InvalidArgument("malformed request body"))
	}
	if err := s.validate.Struct(request); err != nil {
		return replyError(c, apperrors.InvalidArgument(err.Error()))
	}

	ctx := c.Request().Context()
	card, err := s.Store.GetCard(ctx, &store.FindCard{ID: &cardID})
	if err != nil {
		return replyError(c, apperrors.Internal("failed to get card", err))
	}
	if card == nil {
		return replyError(c, apperrors.CardNotFound(cardID))
	}

	updatedTs := time.Now().Unix()
	update := &store.UpdateCard{
		ID:        cardID,
		UpdatedTs: &updatedTs,
		Front:     request.Front,
		Back:      request.Back,
	}
	if request.RowStatus != nil {
		rowStatus := store.RowStatus(*request.RowStatus)
		update.RowStatus = &rowStatus
	}

	if err := s.Store.UpdateCard(ctx, update); err != nil {
		return replyError(c, apperrors.Internal("failed to update card", err))
	}

	card, err = s.Store.GetCard(ctx, &store.FindCard{ID: &cardID})
	if err != nil {
		return replyError(c, apperrors.Internal("failed to get card", err))
	}

	return c.JSON(http.StatusOK, convertCardResponse(card, s.Profile.Location()))
}

// DeleteCard handles DELETE /api/v1/cards/:id. Review records for the card
// are removed with it; the activity log keeps its history.
func (s *APIV1Service) DeleteCard(c echo.Context) error {
	cardID, ok := pathID(c)
	if !ok {
		return replyError(c, apperrors.InvalidArgument("id must be a positive integer"))
	}

	ctx := c.Request().Context()
	card, err := s.Store.GetCard(ctx, &store.FindCard{ID: &cardID})
	if err != nil {
		return replyError(c, apperrors.Internal("failed to get card", err))
	}
	if card == nil {
		return replyError(c, apperrors.CardNotFound(cardID))
	}

	if err := s.Store.DeleteCard(ctx, &store.DeleteCard{ID: cardID}); err != nil {
		return replyError(c, apperrors.Internal("failed to delete card", err))
	}

	return c.NoContent(http.StatusNoContent)
}

func convertCardResponse(card *store.Card, loc *time.Location) *CardResponse {
	return &CardResponse{
		ID:        card.ID,
		UID:       card.UID,
		CreatorID: card.CreatorID,
		Front:     card.Front,
		Back:      card.Back,
		RowStatus: card.RowStatus.String(),
		CreatedAt: time.Unix(card.CreatedTs, 0).In(loc).Format(time.RFC3339),
	}
}
