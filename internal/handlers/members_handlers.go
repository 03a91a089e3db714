package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"housebill/internal/common"
	"housebill/internal/models"
	"housebill/internal/services"

	"github.com/labstack/echo/v4"
)

// MemberHandlers handles HTTP requests for members and their payments.
type MemberHandlers struct {
	memberService *services.MemberService
}

func NewMemberHandlers(memberService *services.MemberService) *MemberHandlers {
	return &MemberHandlers{memberService: memberService}
}

type memberRequest struct {
	HouseID        string  `json:"houseId"`
	ProductID      string  `json:"productId"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	MonthlyFee     float64 `json:"monthlyFee"`
	BillingCycle   string  `json:"billingCycle"`
	PaymentDate    string  `json:"paymentDate"`
	ExpirationDate string  `json:"expirationDate"`
}

func (h *MemberHandlers) bindMember(c echo.Context, req *memberRequest) (*models.Member, error) {
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, common.SendValidationError(c, "name", err.Error())
	}
	if err := common.ValidateNonNegativeFloat(req.MonthlyFee, "monthlyFee"); err != nil {
		return nil, common.SendValidationError(c, "monthlyFee", err.Error())
	}

	houseID, err := common.ValidateUUID(req.HouseID, "houseId")
	if err != nil {
		return nil, common.SendValidationError(c, "houseId", err.Error())
	}

	member := &models.Member{
		HouseID:      houseID,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		MonthlyFee:   req.MonthlyFee,
		BillingCycle: req.BillingCycle,
	}

	if req.ProductID != "" {
		productID, err := common.ValidateUUID(req.ProductID, "productId")
		if err != nil {
			return nil, common.SendValidationError(c, "productId", err.Error())
		}
		member.ProductID = &productID
	}

	paymentDate, err := common.ParseDate(req.PaymentDate, "paymentDate")
	if err != nil {
		return nil, common.SendValidationError(c, "paymentDate", err.Error())
	}
	member.PaymentDate = paymentDate

	expirationDate, err := common.ParseDate(req.ExpirationDate, "expirationDate")
	if err != nil {
		return nil, common.SendValidationError(c, "expirationDate", err.Error())
	}
	member.ExpirationDate = expirationDate

	return member, nil
}

// ListMembers handles GET /api/members, optionally filtered by ?houseId=
func (h *MemberHandlers) ListMembers(c echo.Context) error {
	ctx := c.Request().Context()

	var members []*models.Member
	var err error
	if houseIDParam := c.QueryParam("houseId"); houseIDParam != "" {
		houseID, uerr := common.ValidateUUID(houseIDParam, "houseId")
		if uerr != nil {
			return common.SendValidationError(c, "houseId", uerr.Error())
		}
		members, err = h.memberService.ListMembersByHouse(ctx, houseID)
	} else {
		members, err = h.memberService.ListMembers(ctx)
	}
	if err != nil {
		return common.SendServerError(c, err.Error())
	}
	if members == nil {
		members = []*models.Member{}
	}
	return c.JSON(http.StatusOK, members)
}

// CreateMember handles POST /api/members
func (h *MemberHandlers) CreateMember(c echo.Context) error {
	var req memberRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	member, err := h.bindMember(c, &req)
	if member == nil {
		return err
	}

	if err := h.memberService.CreateMember(c.Request().Context(), member); err != nil {
		return common.SendServerError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, member)
}

// GetMember handles GET /api/members/:id
func (h *MemberHandlers) GetMember(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	member, err := h.memberService.GetMember(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			return common.SendNotFoundError(c, "Member")
		}
		return common.SendServerError(c, err.Error())
	}
	return c.JSON(http.StatusOK, member)
}

// UpdateMember handles PUT /api/members/:id
func (h *MemberHandlers) UpdateMember(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req memberRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	member, err := h.bindMember(c, &req)
	if member == nil {
		return err
	}
	member.ID = id

	if err := h.memberService.UpdateMember(c.Request().Context(), member); err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			return common.SendNotFoundError(c, "Member")
		}
		return common.SendServerError(c, err.Error())
	}
	return c.JSON(http.StatusOK, member)
}

// DeleteMember handles DELETE /api/members/:id
func (h *MemberHandlers) DeleteMember(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.memberService.DeleteMember(c.Request().Context(), id); err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			return common.SendNotFoundError(c, "Member")
		}
		return common.SendServerError(c, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

// RecordPayment handles POST /api/members/:id/pay
func (h *MemberHandlers) RecordPayment(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req struct {
		Amount            float64 `json:"amount"`
		NewExpirationDate string  `json:"newExpirationDate"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateNonNegativeFloat(req.Amount, "amount"); err != nil {
		return common.SendValidationError(c, "amount", err.Error())
	}

	var newExpiration *time.Time
	if req.NewExpirationDate != "" {
		expiration, err := common.ParseDate(req.NewExpirationDate, "newExpirationDate")
		if err != nil {
			return common.SendValidationError(c, "newExpirationDate", err.Error())
		}
		newExpiration = &expiration
	}

	member, err := h.memberService.RecordPayment(c.Request().Context(), id, req.Amount, newExpiration)
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			return common.SendNotFoundError(c, "Member")
		}
		return common.SendServerError(c, err.Error())
	}
	return c.JSON(http.StatusOK, member)
}

// UpcomingPayments handles GET /api/members/upcoming?days=N
func (h *MemberHandlers) UpcomingPayments(c echo.Context) error {
	days := services.DefaultUpcomingDays
	if daysParam := c.QueryParam("days"); daysParam != "" {
		if d, err := strconv.Atoi(daysParam); err == nil && d > 0 {
			days = d
		}
	}

	members, err := h.memberService.UpcomingPayments(c.Request().Context(), days)
	if err != nil {
		return common.SendServerError(c, err.Error())
	}
	if members == nil {
		members = []*models.Member{}
	}
	return c.JSON(http.StatusOK, members)
}
