package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sharathcodingit/remi-fitness-booking-app/handlers"
	"github.com/sharathcodingit/remi-fitness-booking-app/middleware"
	"github.com/sharathcodingit/remi-fitness-booking-app/utils"
)

// RegisterAuthRoutes registers the trainer login endpoint.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.Auth.LoginHandler)
	}
}

// RegisterClientRoutes registers client management endpoints.
func RegisterClientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/clients")
	{
		// Public lookup for the login-by-email flow.
		api.GET("/email/:email", hb.Clients.GetClientByEmailHandler)

		// Everything else is the trainer's.
		api.Use(middleware.JWTAuthTrainerMiddleware())
		api.POST("/register", hb.Clients.RegisterClientHandler)
		api.GET("", hb.Clients.ListClientsHandler)
		api.GET("/export", hb.Clients.ExportClientsHandler)
		api.POST("/:name/complete", hb.Clients.CompleteSessionHandler)
	}
}

// RegisterBookingRoutes sets up the calendar and the booking form flow.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	calendar := r.Group("/api/calendar")
	{
		calendar.Use(middleware.JWTAuthTrainerMiddleware())
		calendar.GET("/slots", hb.Booking.AvailableSlotsHandler)
	}

	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.Use(middleware.JWTAuthTrainerMiddleware())
		bookingGroup.POST("/session", hb.Booking.InitiateSession)
		bookingGroup.PUT("/session/:sessionID", hb.Booking.UpdateSession)
		bookingGroup.POST("/confirm", hb.Booking.ConfirmBooking)
		bookingGroup.DELETE("/session/:sessionID", hb.Booking.CancelSession)
	}
}

// RegisterPaymentRoutes sets up payment tracking endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.Use(middleware.JWTAuthTrainerMiddleware())
		api.GET("/due", hb.Payments.PaymentsDueHandler)
		api.POST("/remind/:name", hb.Payments.RemindClientHandler)
	}
}

// RegisterDashboardRoutes sets up the landing page endpoint.
func RegisterDashboardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/dashboard")
	{
		api.Use(middleware.JWTAuthTrainerMiddleware())
		api.GET("", hb.Dashboard.GetDashboardHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterClientRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterDashboardRoutes(r, hb)
	RegisterHealthRoute(r)
}
