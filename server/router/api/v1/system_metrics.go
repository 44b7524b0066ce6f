package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cardloop/cardloop/server/internal/observability"
)

// GetSystemMetrics handles GET /api/v1/system/metrics. It returns in-process
// counters; there is no external metrics backend.
func (s *APIV1Service) GetSystemMetrics(c echo.Context) error {
	return c.JSON(http.StatusOK, observability.GlobalMetrics().Snapshot())
}
