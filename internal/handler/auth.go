package handler

import (
	"context"  // provides context with cancellation for DB calls
	"net/http" // HTTP status codes and primitives
	"strings"  // string manipulation utilities
	"time"     // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/gocamp/campsite-reservation/internal/config"     // app configuration
	"github.com/gocamp/campsite-reservation/internal/model"      // domain models
	"github.com/gocamp/campsite-reservation/internal/repository" // DB repositories
	"github.com/gocamp/campsite-reservation/internal/utils"      // helper functions (hashing, token issuing)
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Guests *repository.GuestRepo
}

func NewAuthHandler(cfg config.Config, g *repository.GuestRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Guests: g}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Member   bool   `json:"member"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type guestPart struct {
	ID     uint64 `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Member bool   `json:"member"`
}
type authResp struct {
	Guest  guestPart `json:"guest"`
	Access tokenPart `json:"access"`
}

// Register handles POST /v1/auth/register.  It validates the payload,
// hashes the password with bcrypt and creates the guest account.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email"})
	}
	if len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 8 characters"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to hash password"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	guest := &model.Guest{Email: req.Email, PasswordHash: hash, Name: req.Name, IsMember: req.Member}
	if err := h.Guests.Create(ctx, guest); err != nil {
		if err == repository.ErrEmailTaken {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, guest.ID, guest.IsMember, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
	}
	return c.JSON(http.StatusCreated, authResp{
		Guest:  guestPart{ID: guest.ID, Email: guest.Email, Name: guest.Name, Member: guest.IsMember},
		Access: tokenPart{Token: access.Token, Expires: access.Exp},
	})
}

// Login handles POST /v1/auth/login.  It verifies the bcrypt hash and
// issues a fresh access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	guest, err := h.Guests.GetByEmail(ctx, req.Email)
	if err != nil {
		// Do not reveal whether the account exists.
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if !utils.VerifyPassword(guest.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, guest.ID, guest.IsMember, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
	}
	return c.JSON(http.StatusOK, authResp{
		Guest:  guestPart{ID: guest.ID, Email: guest.Email, Name: guest.Name, Member: guest.IsMember},
		Access: tokenPart{Token: access.Token, Expires: access.Exp},
	})
}
