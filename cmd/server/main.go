package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"cab/internal/app"
	"cab/internal/auth"
	"cab/internal/config"
	"cab/internal/estimator"
	"cab/internal/handler"
	"cab/internal/rates"
	internalRedis "cab/internal/redis"
	"cab/internal/repository/postgres"
	"cab/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s (with DB instrumentation)", cfg.NewRelic.AppName)
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Wire dependencies.
	server, err := wireServer(db, redisClient, nrApp, cfg)
	if err != nil {
		log.Fatalf("failed to wire server: %v", err)
	}

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) (*http.Server, error) {
	// Initialize Redis stores.
	sessionStore := internalRedis.NewSessionStore(redisClient)
	loginFlowStore := internalRedis.NewLoginFlowStore(redisClient)
	estimateCache := internalRedis.NewEstimateCache(redisClient)
	lockStore := internalRedis.NewLockStore(redisClient)

	// Initialize repositories.
	bookingRepo := postgres.NewBookingRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)

	// Initialize the fixed credential provider.
	provider, err := auth.NewFixedProvider(cfg.Auth.Admins, cfg.Auth.AdminMobiles, cfg.Auth.GuestOTP, cfg.Auth.AdminOTP)
	if err != nil {
		return nil, err
	}

	// Initialize the external fare estimator.
	fareEstimator := estimator.NewGeminiEstimator(
		cfg.Estimator.APIKey,
		cfg.Estimator.Model,
		cfg.Estimator.BaseURL,
		cfg.Estimator.Timeout,
	)

	// Initialize services.
	notificationService := service.NewNotificationService()
	confirmationService := service.NewConfirmationService(notificationService)
	rateService := service.NewRateService(rates.NewTable())
	loginService := service.NewLoginService(loginFlowStore, sessionStore, provider, notificationService)
	psp := service.NewSimulatedPSP(cfg.Booking.PaymentProcessingDelay)
	paymentService := service.NewPaymentService(paymentRepo, psp, notificationService)
	bookingService := service.NewBookingService(
		bookingRepo,
		fareEstimator,
		rateService,
		paymentService,
		confirmationService,
		notificationService,
		estimateCache,
		lockStore,
		cfg.Booking.AdminConfirmDelay,
	)

	// Initialize handlers.
	authHandler := handler.NewAuthHandler(loginService)
	bookingHandler := handler.NewBookingHandler(bookingService, paymentService, rateService, confirmationService)
	rateHandler := handler.NewRateHandler(rateService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		AuthHandler:    authHandler,
		BookingHandler: bookingHandler,
		RateHandler:    rateHandler,
		SessionStore:   sessionStore,
		RedisClient:    redisClient,
		NewRelicApp:    nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, nil
}
