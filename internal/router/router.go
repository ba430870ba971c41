package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/gocamp/campsite-reservation/internal/config"
	"github.com/gocamp/campsite-reservation/internal/handler"    // import the handlers that implement business logic
	"github.com/gocamp/campsite-reservation/internal/middleware" // import middleware for JWT authentication and rate limiting
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health
// check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes.  Register and login
// do not require an existing session; both issue access tokens.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
}

// RegisterPublic registers unauthenticated browse and quote endpoints.
// Quotes take no lock and persist nothing, so guests can price a stay
// before creating an account.
func RegisterPublic(e *echo.Echo, s *handler.SiteHandler) {
	e.GET("/v1/sites", s.ListSites)
	e.GET("/v1/sites/:id", s.GetSite)
	e.GET("/v1/sites/:id/quote", s.Quote)
}

// RegisterReservations registers the guest-facing reservation routes.
// All of them require a valid access token; the mutating routes
// additionally pass through the Redis rate limiter when one is
// configured.
func RegisterReservations(e *echo.Echo, r *handler.ReservationHandler, jwtSecret string, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group("/v1/reservations")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.NewTokenBucket(rlCfg, rdb))

	g.POST("", r.Create)
	g.GET("", r.List)
	g.GET("/:id", r.Get)
	g.PATCH("/:id", r.Update)
	g.POST("/:id/cancel", r.Cancel)
	g.DELETE("/:id", r.Delete)
}

// RegisterPayments registers the payment collaborator's callback.  The
// gateway authenticates out of band; the route is deliberately outside
// the guest JWT group.
func RegisterPayments(e *echo.Echo, p *handler.PaymentHandler) {
	e.POST("/v1/payments/callback", p.Callback)
}
