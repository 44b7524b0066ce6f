package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cardloop/cardloop/server/internal/observability"
	"github.com/cardloop/cardloop/server/service/dashboard"
	"github.com/cardloop/cardloop/store"
)

// DashboardResponse is the response body for GET /api/v1/dashboard.
type DashboardResponse struct {
	Buckets        *BucketsResponse          `json:"buckets"`
	Stats          *dashboard.StudyStats     `json:"stats"`
	Recommendation *dashboard.Recommendation `json:"recommendation"`
}

// BucketsResponse groups scheduled cards by due window.
type BucketsResponse struct {
	Overdue     []*ScheduleResponse `json:"overdue"`
	Yesterday   []*ScheduleResponse `json:"yesterday"`
	Today       []*ScheduleResponse `json:"today"`
	Tomorrow    []*ScheduleResponse `json:"tomorrow"`
	Within3Days []*ScheduleResponse `json:"within_3_days"`
	Within5Days []*ScheduleResponse `json:"within_5_days"`
}

// GetDashboard handles GET /api/v1/dashboard?member_id=N.
func (s *APIV1Service) GetDashboard(c echo.Context) error {
	memberID, err := strconv.ParseInt(c.QueryParam("member_id"), 10, 32)
	if err != nil || memberID <= 0 {
		return c.JSON(http.StatusBadRequest, &errorResponse{
			Code:    "INVALID_ARGUMENT",
			Message: "member_id must be a positive integer",
		})
	}

	ctx := c.Request().Context()
	if err := s.dashboardSemaphore.Acquire(ctx, 1); err != nil {
		return c.JSON(http.StatusServiceUnavailable, &errorResponse{
			Code:    "UNAVAILABLE",
			Message: "server is busy, retry shortly",
		})
	}
	defer s.dashboardSemaphore.Release(1)

	observability.GlobalMetrics().RecordDashboardRequest()

	now := time.Now().In(s.Profile.Location())
	dash, err := s.DashboardService.GetDashboard(ctx, int32(memberID), now)
	if err != nil {
		return replyError(c, err)
	}

	loc := s.Profile.Location()
	return c.JSON(http.StatusOK, &DashboardResponse{
		Buckets: &BucketsResponse{
			Overdue:     convertScheduleList(dash.Buckets.Overdue, loc),
			Yesterday:   convertScheduleList(dash.Buckets.Yesterday, loc),
			Today:       convertScheduleList(dash.Buckets.Today, loc),
			Tomorrow:    convertScheduleList(dash.Buckets.Tomorrow, loc),
			Within3Days: convertScheduleList(dash.Buckets.Within3Days, loc),
			Within5Days: convertScheduleList(dash.Buckets.Within5Days, loc),
		},
		Stats:          dash.Stats,
		Recommendation: dash.Recommendation,
	})
}

func convertScheduleList(records []*store.ReviewRecord, loc *time.Location) []*ScheduleResponse {
	list := make([]*ScheduleResponse, 0, len(records))
	for _, record := range records {
		list = append(list, convertScheduleResponse(record, loc))
	}
	return list
}
