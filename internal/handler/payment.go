package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gocamp/campsite-reservation/internal/service"
)

// PaymentHandler receives the payment collaborator's callback.  The
// gateway wire protocol itself is external; this endpoint only consumes
// its outcome: success confirms the PENDING reservation, failure
// cancels it.
type PaymentHandler struct {
	Reservations *service.ReservationService
}

func NewPaymentHandler(reservations *service.ReservationService) *PaymentHandler {
	return &PaymentHandler{Reservations: reservations}
}

type paymentCallbackReq struct {
	Reference string `json:"reference"`
	Status    string `json:"status"` // PAID | FAILED
	Reason    string `json:"reason,omitempty"`
}

// Callback handles POST /v1/payments/callback.
func (h *PaymentHandler) Callback(c echo.Context) error {
	var req paymentCallbackReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Reference == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reference is required"})
	}

	var paid bool
	switch req.Status {
	case "PAID":
		paid = true
	case "FAILED":
		paid = false
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be PAID or FAILED"})
	}

	res, err := h.Reservations.HandlePaymentResult(c.Request().Context(), req.Reference, paid, req.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toReservationResp(res))
}
