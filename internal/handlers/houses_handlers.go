package handlers

import (
	"errors"
	"net/http"

	"housebill/internal/analytics"
	"housebill/internal/common"
	"housebill/internal/models"
	"housebill/internal/services"

	"github.com/labstack/echo/v4"
)

// HouseHandlers handles HTTP requests for houses.
type HouseHandlers struct {
	houseService  *services.HouseService
	memberService *services.MemberService
	analyticsSvc  *analytics.AnalyticsService
}

func NewHouseHandlers(houseService *services.HouseService, memberService *services.MemberService,
	analyticsSvc *analytics.AnalyticsService) *HouseHandlers {
	return &HouseHandlers{
		houseService:  houseService,
		memberService: memberService,
		analyticsSvc:  analyticsSvc,
	}
}

// ListHouses handles GET /api/houses
func (h *HouseHandlers) ListHouses(c echo.Context) error {
	houses, err := h.houseService.ListHouses(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, err.Error())
	}
	if houses == nil {
		houses = []*models.House{}
	}
	return c.JSON(http.StatusOK, houses)
}

// CreateHouse handles POST /api/houses
func (h *HouseHandlers) CreateHouse(c echo.Context) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		ProductID   string `json:"productId"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}

	house := &models.House{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.ProductID != "" {
		productID, err := common.ValidateUUID(req.ProductID, "productId")
		if err != nil {
			return common.SendValidationError(c, "productId", err.Error())
		}
		house.ProductID = &productID
	}

	if err := h.houseService.CreateHouse(c.Request().Context(), house); err != nil {
		return common.SendServerError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, house)
}

// GetHouse handles GET /api/houses/:id, returning the house together with
// its members.
func (h *HouseHandlers) GetHouse(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	house, err := h.houseService.GetHouse(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrHouseNotFound) {
			return common.SendNotFoundError(c, "House")
		}
		return common.SendServerError(c, err.Error())
	}

	members, err := h.memberService.ListMembersByHouse(c.Request().Context(), id)
	if err != nil {
		return common.SendServerError(c, err.Error())
	}
	if members == nil {
		members = []*models.Member{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"house":   house,
		"members": members,
	})
}

// UpdateHouse handles PUT /api/houses/:id
func (h *HouseHandlers) UpdateHouse(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		ProductID   string `json:"productId"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}

	house := &models.House{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	}
	if req.ProductID != "" {
		productID, err := common.ValidateUUID(req.ProductID, "productId")
		if err != nil {
			return common.SendValidationError(c, "productId", err.Error())
		}
		house.ProductID = &productID
	}

	if err := h.houseService.UpdateHouse(c.Request().Context(), house); err != nil {
		if errors.Is(err, services.ErrHouseNotFound) {
			return common.SendNotFoundError(c, "House")
		}
		return common.SendServerError(c, err.Error())
	}
	return c.JSON(http.StatusOK, house)
}

// DeleteHouse handles DELETE /api/houses/:id
func (h *HouseHandlers) DeleteHouse(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.houseService.DeleteHouse(c.Request().Context(), id); err != nil {
		if errors.Is(err, services.ErrHouseNotFound) {
			return common.SendNotFoundError(c, "House")
		}
		return common.SendServerError(c, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

// GetHouseStats handles GET /api/houses/:id/stats
func (h *HouseHandlers) GetHouseStats(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if _, err := h.houseService.GetHouse(c.Request().Context(), id); err != nil {
		if errors.Is(err, services.ErrHouseNotFound) {
			return common.SendNotFoundError(c, "House")
		}
		return common.SendServerError(c, err.Error())
	}

	stats, err := h.analyticsSvc.HouseStats(c.Request().Context(), id)
	if err != nil {
		return common.SendServerError(c, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}
