package handlers

import (
	"net/http"

	"housebill/internal/common"
	"housebill/internal/services"

	"github.com/labstack/echo/v4"
)

// SampleDataHandlers resets the database to the demo dataset.
type SampleDataHandlers struct {
	sampleDataSvc *services.SampleDataService
}

func NewSampleDataHandlers(sampleDataSvc *services.SampleDataService) *SampleDataHandlers {
	return &SampleDataHandlers{sampleDataSvc: sampleDataSvc}
}

// CreateSampleData handles POST /api/sample-data. Destructive: wipes houses,
// members and payments before seeding.
func (h *SampleDataHandlers) CreateSampleData(c echo.Context) error {
	if err := h.sampleDataSvc.Seed(c.Request().Context()); err != nil {
		return common.SendServerError(c, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Sample data created",
	})
}
