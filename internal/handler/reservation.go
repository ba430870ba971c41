package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gocamp/campsite-reservation/internal/middleware"
	"github.com/gocamp/campsite-reservation/internal/model"
	"github.com/gocamp/campsite-reservation/internal/service"
)

// ReservationHandler exposes the guest-facing reservation endpoints.
// All methods assume JWT authentication has already been performed by
// middleware and extract the guest ID from the context; they return 401
// when no usable identity is present.  Everything conflict-sensitive
// happens inside the service behind the availability guard.
type ReservationHandler struct {
	Reservations *service.ReservationService
}

func NewReservationHandler(reservations *service.ReservationService) *ReservationHandler {
	if reservations == nil {
		panic("nil service passed to NewReservationHandler")
	}
	return &ReservationHandler{Reservations: reservations}
}

// ----- DTOs -----

type createReservationReq struct {
	SiteID         uint64 `json:"site_id"`
	CheckIn        string `json:"check_in"`  // YYYY-MM-DD
	CheckOut       string `json:"check_out"` // YYYY-MM-DD
	Guests         int    `json:"guests"`
	ExpectedAmount *int64 `json:"expected_amount,omitempty"`
}

type updateReservationReq struct {
	CheckIn  *string `json:"check_in,omitempty"`
	CheckOut *string `json:"check_out,omitempty"`
	Guests   *int    `json:"guests,omitempty"`
}

type cancelReservationReq struct {
	Reason string `json:"reason"`
}

type reservationResp struct {
	ID           uint64               `json:"id"`
	Reference    string               `json:"reference"`
	SiteID       uint64               `json:"site_id"`
	CheckIn      string               `json:"check_in"`
	CheckOut     string               `json:"check_out"`
	Guests       int                  `json:"guests"`
	Status       string               `json:"status"`
	TotalAmount  int64                `json:"total_amount"`
	Breakdown    model.PriceBreakdown `json:"breakdown"`
	CancelReason *string              `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

func toReservationResp(r *model.Reservation) reservationResp {
	return reservationResp{
		ID:           r.ID,
		Reference:    r.Reference,
		SiteID:       r.SiteID,
		CheckIn:      r.CheckIn.Format("2006-01-02"),
		CheckOut:     r.CheckOut.Format("2006-01-02"),
		Guests:       r.Guests,
		Status:       string(r.Status),
		TotalAmount:  r.TotalAmount,
		Breakdown:    r.Breakdown,
		CancelReason: r.CancelReason,
		CreatedAt:    r.CreatedAt,
	}
}

// Create handles POST /v1/reservations.  It books a site for the
// authenticated guest.  A conflicting range returns 409; a lock wait
// timeout returns 423 and may be retried unchanged.
func (h *ReservationHandler) Create(c echo.Context) error {
	guestID, ok := middleware.GuestID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.SiteID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "site_id is required"})
	}
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_in date"})
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_out date"})
	}

	res, err := h.Reservations.CreateReservation(c.Request().Context(), service.CreateParams{
		GuestID:        guestID,
		SiteID:         req.SiteID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		Guests:         req.Guests,
		ExpectedAmount: req.ExpectedAmount,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toReservationResp(res))
}

// List handles GET /v1/reservations and returns the guest's bookings.
func (h *ReservationHandler) List(c echo.Context) error {
	guestID, ok := middleware.GuestID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	list, err := h.Reservations.ListReservations(c.Request().Context(), guestID)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]reservationResp, 0, len(list))
	for i := range list {
		out = append(out, toReservationResp(&list[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	guestID, ok := middleware.GuestID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	res, err := h.Reservations.GetReservation(c.Request().Context(), id, guestID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toReservationResp(res))
}

// Update handles PATCH /v1/reservations/:id.  Dates and guest count may
// change while the reservation is still PENDING; the availability guard
// re-runs with the reservation's own row excluded.
func (h *ReservationHandler) Update(c echo.Context) error {
	guestID, ok := middleware.GuestID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req updateReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	var params service.UpdateParams
	if req.CheckIn != nil {
		d, err := parseDate(*req.CheckIn)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_in date"})
		}
		params.CheckIn = &d
	}
	if req.CheckOut != nil {
		d, err := parseDate(*req.CheckOut)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_out date"})
		}
		params.CheckOut = &d
	}
	params.Guests = req.Guests

	res, err := h.Reservations.UpdateReservation(c.Request().Context(), id, guestID, params)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toReservationResp(res))
}

// Cancel handles POST /v1/reservations/:id/cancel.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	guestID, ok := middleware.GuestID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req cancelReservationReq
	_ = c.Bind(&req) // reason is optional
	if req.Reason == "" {
		req.Reason = "cancelled by guest"
	}
	if err := h.Reservations.CancelReservation(c.Request().Context(), id, guestID, req.Reason); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/reservations/:id.  Only PENDING
// reservations may be soft-deleted.
func (h *ReservationHandler) Delete(c echo.Context) error {
	guestID, ok := middleware.GuestID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	if err := h.Reservations.DeleteReservation(c.Request().Context(), id, guestID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
