// Package v1 exposes the scheduler over plain JSON HTTP endpoints.
package v1

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/semaphore"

	"github.com/cardloop/cardloop/internal/profile"
	apperrors "github.com/cardloop/cardloop/server/internal/errors"
	"github.com/cardloop/cardloop/server/middleware"
	"github.com/cardloop/cardloop/server/service/dashboard"
	"github.com/cardloop/cardloop/server/service/review"
	"github.com/cardloop/cardloop/store"
)

type APIV1Service struct {
	Profile          *profile.Profile
	Store            *store.Store
	ReviewService    review.Service
	DashboardService dashboard.Service

	validate    *validator.Validate
	rateLimiter *middleware.RateLimiter

	// dashboardSemaphore caps concurrent dashboard computations; each one
	// scans a learner's full schedule horizon.
	dashboardSemaphore *semaphore.Weighted
}

func NewAPIV1Service(profile *profile.Profile, store *store.Store) *APIV1Service {
	return &APIV1Service{
		Profile:            profile,
		Store:              store,
		ReviewService:      review.NewService(store),
		DashboardService:   dashboard.NewService(store),
		validate:           validator.New(),
		rateLimiter:        middleware.NewDefaultRateLimiter(),
		dashboardSemaphore: semaphore.NewWeighted(8),
	}
}

// RegisterRoutes registers all v1 routes with the given Echo instance.
func (s *APIV1Service) RegisterRoutes(echoServer *echo.Echo) {
	apiGroup := echoServer.Group("/api/v1")
	apiGroup.Use(echomiddleware.CORS())

	apiGroup.POST("/reviews", s.CompleteReview)
	apiGroup.GET("/dashboard", s.GetDashboard)
	apiGroup.GET("/system/metrics", s.GetSystemMetrics)

	apiGroup.POST("/members", s.CreateMember)
	apiGroup.GET("/members/:id", s.GetMember)
	apiGroup.DELETE("/members/:id", s.DeleteMember)

	apiGroup.POST("/cards", s.CreateCard)
	apiGroup.GET("/cards", s.ListCards)
	apiGroup.GET("/cards/:id", s.GetCard)
	apiGroup.PATCH("/cards/:id", s.UpdateCard)
	apiGroup.DELETE("/cards/:id", s.DeleteCard)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// replyError translates a service error to an HTTP response with a stable
// machine-readable code.
func replyError(c echo.Context, err error) error {
	code := apperrors.GetCodeFromError(err, apperrors.ErrCodeInternal)

	message := err.Error()
	if code == apperrors.ErrCodeInternal {
		// Internal details stay in the logs.
		message = "internal server error"
	}

	return c.JSON(httpStatus(code), &errorResponse{
		Code:    string(code),
		Message: message,
	})
}

func httpStatus(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeCardNotFound, apperrors.ErrCodeMemberNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeUnrecognizedOutcome, apperrors.ErrCodeInvalidArgument:
		return http.StatusBadRequest
	case apperrors.ErrCodeConcurrentModification:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
