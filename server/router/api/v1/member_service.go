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

// CreateMemberRequest is the request body for POST /api/v1/members.
type CreateMemberRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Nickname string `json:"nickname" validate:"max=64"`
}

// MemberResponse is the wire form of a member.
type MemberResponse struct {
	ID        int32  `json:"id"`
	UID       string `json:"uid"`
	Username  string `json:"username"`
	Nickname  string `json:"nickname"`
	RowStatus string `json:"row_status"`
	CreatedAt string `json:"created_at"`
}

// CreateMember handles POST /api/v1/members.
func (s *APIV1Service) CreateMember(c echo.Context) error {
	request := &CreateMemberRequest{}
	if err := c.Bind(request); err != nil {
		return replyError(c, apperrors.InvalidArgument("malformed request body"))
	}
	if err := s.validate.Struct(request); err != nil {
		return replyError(c, apperrors.InvalidArgument(err.Error()))
	}

	member, err := s.Store.CreateMember(c.Request().Context(), &store.Member{
		UID:      util.GenUUID(),
		Username: request.Username,
		Nickname: request.Nickname,
	})
	if err != nil {
		return replyError(c, apperrors.Internal("failed to create member", err))
	}

	return c.JSON(http.StatusOK, convertMemberResponse(member, s.Profile.Location()))
}

// GetMember handles GET /api/v1/members/:id.
func (s *APIV1Service) GetMember(c echo.Context) error {
	memberID, ok := pathID(c)
	if !ok {
		return replyError(c, apperrors.InvalidArgument("id must be a positive integer"))
	}

	member, err := s.Store.GetMember(c.Request().Context(), &store.FindMember{ID: &memberID})
	if err != nil {
		return replyError(c, apperrors.Internal("failed to get member", err))
	}
	if member == nil {
		return replyError(c, apperrors.MemberNotFound(memberID))
	}

	return c.JSON(http.StatusOK, convertMemberResponse(member, s.Profile.Location()))
}

// DeleteMember handles DELETE /api/v1/members/:id.
func (s *APIV1Service) DeleteMember(c echo.Context) error {
	memberID, ok := pathID(c)
	if !ok {
		return replyError(c, apperrors.InvalidArgument("id must be a positive integer"))
	}

	ctx := c.Request().Context()
	member, err := s.Store.GetMember(ctx, &store.FindMember{ID: &memberID})
	if err != nil {
		return replyError(c, apperrors.Internal("failed to get member", err))
	}
	if member == nil {
		return replyError(c, apperrors.MemberNotFound(memberID))
	}

	if err := s.Store.DeleteMember(ctx, &store.DeleteMember{ID: memberID}); err != nil {
		return replyError(c, apperrors.Internal("failed to delete member", err))
	}

	return c.NoContent(http.StatusNoContent)
}

func convertMemberResponse(member *store.Member, loc *time.Location) *MemberResponse {
	return &MemberResponse{
		ID:        member.ID,
		UID:       member.UID,
		Username:  member.Username,
		Nickname:  member.Nickname,
		RowStatus: member.RowStatus.String(),
		CreatedAt: time.Unix(member.CreatedTs, 0).In(loc).Format(time.RFC3339),
	}
}

// pathID parses the :id path parameter as a positive int32.
func pathID(c echo.Context) (int32, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}
