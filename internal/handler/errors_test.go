package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocamp/campsite-reservation/internal/model"
	"github.com/gocamp/campsite-reservation/internal/pricing"
	"github.com/gocamp/campsite-reservation/internal/repository"
	"github.com/gocamp/campsite-reservation/internal/service"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid date range", service.ErrInvalidDateRange, http.StatusBadRequest},
		{"check-in past", service.ErrCheckInPast, http.StatusBadRequest},
		{"guest count", service.ErrGuestCount, http.StatusBadRequest},
		{"site not bookable", service.ErrSiteNotBookable, http.StatusBadRequest},
		{"site not found", repository.ErrSiteNotFound, http.StatusNotFound},
		{"reservation not found", repository.ErrReservationNotFound, http.StatusNotFound},
		{"forbidden", service.ErrForbidden, http.StatusForbidden},
		{"conflict", repository.ErrReservationConflict, http.StatusConflict},
		{"lock wait timeout", repository.ErrLockWaitTimeout, http.StatusLocked},
		{"invalid transition", model.ErrInvalidTransition, http.StatusConflict},
		{"not editable", service.ErrNotEditable, http.StatusConflict},
		{"no active rules", pricing.ErrNoActiveRules, http.StatusInternalServerError},
		{"no applicable rule", &pricing.NoApplicablePricingError{Date: time.Now()}, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	e := echo.New()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
			require.NoError(t, writeError(ctx, c.err))
			assert.Equal(t, c.code, rec.Code)
		})
	}
}

func TestWriteErrorRetryableFlags(t *testing.T) {
	e := echo.New()

	rec := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, writeError(ctx, repository.ErrReservationConflict))
	assert.Contains(t, rec.Body.String(), `"retryable":false`)

	rec = httptest.NewRecorder()
	ctx = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, writeError(ctx, repository.ErrLockWaitTimeout))
	assert.Contains(t, rec.Body.String(), `"retryable":true`)
}
