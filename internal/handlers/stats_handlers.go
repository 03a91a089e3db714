package handlers

import (
	"net/http"

	"housebill/internal/analytics"
	"housebill/internal/common"

	"github.com/labstack/echo/v4"
)

// StatsHandlers serves the dashboard statistics snapshot.
type StatsHandlers struct {
	analyticsSvc *analytics.AnalyticsService
}

func NewStatsHandlers(analyticsSvc *analytics.AnalyticsService) *StatsHandlers {
	return &StatsHandlers{analyticsSvc: analyticsSvc}
}

// GetStats handles GET /api/stats
func (h *StatsHandlers) GetStats(c echo.Context) error {
	stats, err := h.analyticsSvc.Stats(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}
