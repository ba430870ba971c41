package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gocamp/campsite-reservation/internal/model"
	"github.com/gocamp/campsite-reservation/internal/pricing"
	"github.com/gocamp/campsite-reservation/internal/repository"
	"github.com/gocamp/campsite-reservation/internal/service"
)

// writeError translates service and repository errors into HTTP
// responses.  The mapping is deliberate: conflicts are 409 and must not
// be retried unchanged, lock wait timeouts are 423 and safe to retry
// after backoff, and pricing configuration defects are 500 because the
// client can do nothing about them.
func writeError(c echo.Context, err error) error {
	var noPricing *pricing.NoApplicablePricingError

	switch {
	case errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrCheckInPast),
		errors.Is(err, service.ErrGuestCount),
		errors.Is(err, service.ErrSiteNotBookable):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})

	case errors.Is(err, repository.ErrSiteNotFound),
		errors.Is(err, repository.ErrReservationNotFound),
		errors.Is(err, repository.ErrGuestNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})

	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your reservation"})

	case errors.Is(err, repository.ErrReservationConflict):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":     "requested dates are no longer available",
			"retryable": false,
		})

	case errors.Is(err, repository.ErrLockWaitTimeout):
		return c.JSON(http.StatusLocked, echo.Map{
			"error":     "site is busy, please retry",
			"retryable": true,
		})

	case errors.Is(err, model.ErrInvalidTransition),
		errors.Is(err, service.ErrNotEditable):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})

	case errors.As(err, &noPricing), errors.Is(err, pricing.ErrNoActiveRules):
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "pricing configuration error"})
	}

	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
