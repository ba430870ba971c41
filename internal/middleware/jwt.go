package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// JWTAuth returns an Echo middleware that validates a Bearer access token and
// injects the token's subject (guest ID) and membership claims into the
// request context.  The provided secret must match the one used when issuing
// tokens.  This middleware should wrap protected routes so that handlers can
// access the authenticated guest via GuestID(c).
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the JWT.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Parse with HS256 and our secret; reject any other signing method.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			// Store the subject and membership claims for downstream handlers.
			c.Set("guest_id", claims["sub"])
			c.Set("member", claims["member"])
			return next(c)
		}
	}
}

// GuestID extracts the authenticated guest's ID from the context values
// set by JWTAuth.  The zero value and false are returned when the
// request carries no usable identity.
func GuestID(c echo.Context) (uint64, bool) {
	v := c.Get("guest_id")
	switch id := v.(type) {
	case float64: // MapClaims decodes numbers as float64
		if id > 0 {
			return uint64(id), true
		}
	case uint64:
		if id > 0 {
			return id, true
		}
	case int64:
		if id > 0 {
			return uint64(id), true
		}
	}
	return 0, false
}
