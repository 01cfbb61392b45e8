package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"cab/internal/domain"
	"cab/internal/handler"
	"cab/internal/middleware"
	internalredis "cab/internal/redis"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler    *handler.AuthHandler
	BookingHandler *handler.BookingHandler
	RateHandler    *handler.RateHandler
	SessionStore   internalredis.SessionStoreInterface
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "helpline": domain.HelplineNumber})
	})

	requireSession := middleware.SessionMiddleware(deps.SessionStore)

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Login wizard routes. Open until a session is issued.
		auth := v1.Group("/auth")
		{
			auth.POST("/flows", deps.AuthHandler.StartFlow)
			auth.POST("/flows/:id/role", deps.AuthHandler.SelectRole)
			auth.POST("/flows/:id/guest/mobile", deps.AuthHandler.SubmitGuestMobile)
			auth.POST("/flows/:id/guest/otp", deps.AuthHandler.SubmitGuestOTP)
			auth.POST("/flows/:id/admin/method", deps.AuthHandler.SelectAdminMethod)
			auth.POST("/flows/:id/admin/email", deps.AuthHandler.SubmitAdminEmail)
			auth.POST("/flows/:id/admin/mobile", deps.AuthHandler.SubmitAdminMobile)
			auth.POST("/flows/:id/admin/otp", deps.AuthHandler.SubmitAdminOTP)
			auth.POST("/flows/:id/back", deps.AuthHandler.Back)
			auth.POST("/logout", requireSession, deps.AuthHandler.Logout)
		}

		// Vehicle catalogue.
		v1.GET("/vehicles", requireSession, deps.BookingHandler.GetVehicles)

		// Booking wizard routes.
		bookings := v1.Group("/bookings", requireSession)
		{
			bookings.POST("", deps.BookingHandler.CreateBooking)
			bookings.GET("", middleware.RequireAdmin(), deps.BookingHandler.ListBookings)
			bookings.GET("/:id", deps.BookingHandler.GetBooking)
			bookings.POST("/:id/confirm", deps.BookingHandler.ConfirmBooking)
			bookings.POST("/:id/pay", deps.BookingHandler.PayAdvance)
			bookings.POST("/:id/back", deps.BookingHandler.BackToFareDetails)
			bookings.POST("/:id/new", deps.BookingHandler.NewBooking)
		}

		// Payment lookup.
		v1.GET("/payments/:id", requireSession, deps.BookingHandler.GetPayment)

		// Rate table routes, admin only. Guests read prices via /v1/vehicles.
		rates := v1.Group("/rates", requireSession, middleware.RequireAdmin())
		{
			rates.GET("", deps.RateHandler.GetRates)
			rates.PUT("", deps.RateHandler.UpdateRates)
		}
	}

	return router
}
