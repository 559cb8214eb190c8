package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/storepulse/store-rating/internal/core/domain"
	"github.com/storepulse/store-rating/internal/core/ports"
)

type DashboardHandler struct {
	dashboardService ports.DashboardService
}

func NewDashboardHandler(dashboardService ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats returns platform-wide counts.
//
// @Summary      Dashboard statistics
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsEnvelope
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /dashboard/stats [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	stats, err := h.dashboardService.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statsEnvelope{Stats: *stats})
}

// Activity returns the most recent audit entries, newest first.
//
// @Summary      Recent activity
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Number of entries (default 20, max 100)"
// @Success      200    {object}  activityEnvelope
// @Failure      400    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /dashboard/activity [get]
func (h *DashboardHandler) Activity(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return domain.NewValidationError("limit must be a non-negative integer")
		}
		limit = n
	}

	entries, err := h.dashboardService.RecentActivity(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []domain.Activity{}
	}
	return c.JSON(http.StatusOK, activityEnvelope{Activity: entries})
}
