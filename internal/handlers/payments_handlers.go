package handlers

import (
	"net/http"

	"housebill/internal/common"
	"housebill/internal/models"
	"housebill/internal/repositories"

	"github.com/labstack/echo/v4"
)

// PaymentHandlers exposes the payment ledger.
type PaymentHandlers struct {
	paymentRepo repositories.PaymentRepository
}

func NewPaymentHandlers(paymentRepo repositories.PaymentRepository) *PaymentHandlers {
	return &PaymentHandlers{paymentRepo: paymentRepo}
}

// ListPayments handles GET /api/payments, newest first with member and house
// names attached.
func (h *PaymentHandlers) ListPayments(c echo.Context) error {
	payments, err := h.paymentRepo.ListAll(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, err.Error())
	}
	if payments == nil {
		payments = []*models.PaymentRecord{}
	}
	return c.JSON(http.StatusOK, payments)
}
