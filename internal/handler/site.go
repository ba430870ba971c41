package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gocamp/campsite-reservation/internal/repository"
	"github.com/gocamp/campsite-reservation/internal/service"
)

// SiteHandler exposes the public browse and quote endpoints.  Quotes
// are read-only estimates: no lock is taken and nothing is persisted,
// so these routes are safe to cache.
type SiteHandler struct {
	Sites        *repository.SiteRepo
	Reservations *service.ReservationService
}

func NewSiteHandler(sites *repository.SiteRepo, reservations *service.ReservationService) *SiteHandler {
	return &SiteHandler{Sites: sites, Reservations: reservations}
}

type siteResp struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
}

// ListSites handles GET /v1/sites.  It returns all bookable sites.
func (h *SiteHandler) ListSites(c echo.Context) error {
	sites, err := h.Sites.ListBookable(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]siteResp, 0, len(sites))
	for _, s := range sites {
		out = append(out, siteResp{ID: s.ID, Name: s.Name, Capacity: s.Capacity, Status: string(s.Status), Description: s.Description})
	}
	return c.JSON(http.StatusOK, out)
}

// GetSite handles GET /v1/sites/:id.
func (h *SiteHandler) GetSite(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid site id"})
	}
	s, err := h.Sites.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, siteResp{ID: s.ID, Name: s.Name, Capacity: s.Capacity, Status: string(s.Status), Description: s.Description})
}

// Quote handles GET /v1/sites/:id/quote.  Query parameters: check_in and
// check_out as YYYY-MM-DD, guests as a positive integer.  It returns the
// full price breakdown without creating anything.
func (h *SiteHandler) Quote(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid site id"})
	}
	checkIn, err := parseDate(c.QueryParam("check_in"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_in date"})
	}
	checkOut, err := parseDate(c.QueryParam("check_out"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_out date"})
	}
	guests, err := strconv.Atoi(c.QueryParam("guests"))
	if err != nil || guests < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guests count"})
	}

	bd, err := h.Reservations.Quote(c.Request().Context(), id, checkIn, checkOut, guests)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, bd)
}

// parseDate parses a YYYY-MM-DD query or body value as a UTC date.
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
