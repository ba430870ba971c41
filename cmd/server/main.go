package main // Entry point package

import (
	"context"
	"log" // Logging library

	"github.com/joho/godotenv"    // Load .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/gocamp/campsite-reservation/internal/cache"
	"github.com/gocamp/campsite-reservation/internal/config" // Internal config loader
	"github.com/gocamp/campsite-reservation/internal/database"
	"github.com/gocamp/campsite-reservation/internal/handler"
	"github.com/gocamp/campsite-reservation/internal/pricing"
	"github.com/gocamp/campsite-reservation/internal/queue"
	"github.com/gocamp/campsite-reservation/internal/repository"
	"github.com/gocamp/campsite-reservation/internal/router" // Internal router setup
	"github.com/gocamp/campsite-reservation/internal/service"
)

func main() {
	_ = godotenv.Load() // optional .env for local development
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache invalidation and rate limiting disabled")
	}

	sites := repository.NewSiteRepo(db)
	rules := repository.NewPricingRuleRepo(db)
	reservations := repository.NewReservationRepo(db, cfg.LockWaitTimeoutSec)
	guests := repository.NewGuestRepo(db)

	engine := pricing.NewEngine(nil) // default month-band season classifier
	invalidator := cache.NewInvalidator(rdb)
	svc := service.NewReservationService(sites, rules, reservations, engine,
		invalidator, queue.PublishReservationEvent, cfg.PriceToleranceWon)

	// Background workers: notification consumer and checkout completion.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	go svc.RunCompletionWorker(workerCtx, 0)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, guests))
	router.RegisterPublic(e, handler.NewSiteHandler(sites, svc))
	router.RegisterReservations(e, handler.NewReservationHandler(svc), cfg.JWTSecret, config.LoadRateLimitConfig(), rdb)
	router.RegisterPayments(e, handler.NewPaymentHandler(svc))

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err)
	}
}
