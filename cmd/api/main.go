package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/glowbook/booking-api/internal/config"
	"github.com/glowbook/booking-api/internal/email"
	authHandler "github.com/glowbook/booking-api/internal/handler/auth"
	bookingHandler "github.com/glowbook/booking-api/internal/handler/booking"
	catalogHandler "github.com/glowbook/booking-api/internal/handler/catalog"
	healthHandler "github.com/glowbook/booking-api/internal/handler/health"
	"github.com/glowbook/booking-api/internal/middleware"
	"github.com/glowbook/booking-api/internal/repository/postgres"
	redisrepo "github.com/glowbook/booking-api/internal/repository/redis"
	"github.com/glowbook/booking-api/internal/router"
	"github.com/glowbook/booking-api/internal/service/auth"
	"github.com/glowbook/booking-api/internal/service/availability"
	"github.com/glowbook/booking-api/internal/service/bookingflow"
	"github.com/glowbook/booking-api/internal/service/catalog"
	"github.com/glowbook/booking-api/internal/service/notification"
	pkgauth "github.com/glowbook/booking-api/pkg/auth"
	"github.com/glowbook/booking-api/pkg/logger"
	"github.com/glowbook/booking-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	// Database
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Redis draft store
	redisClient, err := redisrepo.NewClient(cfg.Redis.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer redisClient.Close()

	appMetrics := metrics.NewMetrics("glowbook")

	// Repositories
	serviceRepo := postgres.NewServiceRepository(db, appMetrics)
	staffRepo := postgres.NewStaffRepository(db, appMetrics)
	bookingRepo := postgres.NewBookingRepository(db, appMetrics)
	customerRepo := postgres.NewCustomerRepository(db, appMetrics)
	draftStore := redisrepo.NewDraftStore(redisClient, time.Duration(cfg.Redis.DraftTTLMinutes)*time.Minute, appMetrics)

	// Services
	jwtSvc := pkgauth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	authSvc := auth.NewService(customerRepo, jwtSvc, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)

	resolver := availability.NewResolver(bookingRepo, availability.Window{
		Open:        cfg.Booking.OpenTime,
		Close:       cfg.Booking.CloseTime,
		SlotMinutes: cfg.Booking.SlotMinutes,
	})
	catalogSvc := catalog.NewService(serviceRepo, staffRepo, resolver, time.Duration(cfg.Booking.CacheSeconds)*time.Second)

	emailSvc := email.NewSMTPService(cfg.SMTP)
	notifSvc := notification.NewService(emailSvc)

	flowSvc := bookingflow.NewService(
		draftStore,
		serviceRepo,
		staffRepo,
		bookingRepo,
		customerRepo,
		resolver,
		notifSvc,
		appLogger,
		appMetrics,
	)

	// Router and handlers
	authMiddleware := middleware.NewAuthMiddleware(authSvc)
	r := router.NewRouter(authMiddleware, router.Config{
		RateLimit: rate.Limit(cfg.Server.RateLimit),
		RateBurst: cfg.Server.RateBurst,
	})
	r.Setup()

	healthHandler.NewHandler(db).RegisterRoutes(r.Engine())
	authHandler.NewHandler(authSvc).RegisterRoutes(r.Public())
	catalogHandler.NewHandler(catalogSvc).RegisterRoutes(r.Public())
	bookingHandler.NewHandler(flowSvc).RegisterRoutes(r.Protected())

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Server.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
