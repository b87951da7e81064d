package routes

import (
	"net/http"
	"time"

	"slotwise/config"
	"slotwise/handlers"
	"slotwise/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle collects the handlers the router needs.
type HandlerBundle struct {
	Slots    *handlers.SlotHandler
	Bookings *handlers.BookingHandler
	Payments *handlers.PaymentHandler
	Sweeps   *handlers.SweepHandler
}

// RegisterSlotRoutes registers the slot query endpoint.
func RegisterSlotRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.GET("/api/slots", hb.Slots.GetSlots)
}

// RegisterBookingRoutes sets up the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.GET("", hb.Bookings.List)
		bookingGroup.POST("", hb.Bookings.Create)
		bookingGroup.POST("/:id/cancel", hb.Bookings.Cancel)
		bookingGroup.POST("/:id/reschedule", hb.Bookings.Reschedule)
		bookingGroup.POST("/:id/checkin", hb.Bookings.CheckIn)
		bookingGroup.POST("/:id/mark-paid", hb.Bookings.MarkPaid)
		bookingGroup.POST("/:id/no-show", hb.Bookings.NoShow)
	}
}

// RegisterPaymentRoutes registers the gateway webhook endpoint.
func RegisterPaymentRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.POST("/api/payments/webhook", hb.Payments.Webhook)
}

// RegisterSweepRoutes sets up the manual sweep triggers behind the sweep
// secret.
func RegisterSweepRoutes(r *gin.Engine, hb *HandlerBundle) {
	sweepGroup := r.Group("/api/sweeps")
	{
		sweepGroup.Use(middleware.SweepAuthMiddleware(config.AppConfig.SweepSecret))
		sweepGroup.POST("/auto-complete", hb.Sweeps.AutoComplete)
		sweepGroup.POST("/auto-no-show", hb.Sweeps.AutoNoShow)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterSlotRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterSweepRoutes(r, hb)
}
