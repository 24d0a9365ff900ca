package routes

import (
	"net/http"
	"time"

	"github.com/Philip2024394/website-massage--sub045/handlers"
	"github.com/Philip2024394/website-massage--sub045/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	api := r.Group("/api/bookings")
	{
		api.POST("", bh.CreateBookingHandler)
		api.GET("/:id", bh.GetBookingHandler)

		// Transitions require an authenticated provider token.
		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware("provider"))
		protected.POST("/:id/accept", bh.AcceptBookingHandler)
		protected.POST("/:id/confirm", bh.ConfirmBookingHandler)
		protected.POST("/:id/complete", bh.CompleteBookingHandler)
		protected.POST("/:id/cancel", bh.CancelBookingHandler)
		protected.POST("/:id/decline", bh.DeclineBookingHandler)
	}

	r.GET("/api/providers/:id/bookings", middleware.JWTAuthMiddleware(""), bh.GetProviderBookingsHandler)
}

// RegisterAuthRoutes registers token issuance and session revocation.
func RegisterAuthRoutes(r *gin.Engine, ah *handlers.AuthHandler) {
	api := r.Group("/api/auth")
	api.POST("/token", ah.IssueTokenHandler)
	api.POST("/logout", middleware.JWTAuthMiddleware(""), ah.LogoutHandler)
}

// RegisterAdminRoutes registers commission reporting and diagnostics.
func RegisterAdminRoutes(r *gin.Engine, ch *handlers.CommissionHandler) {
	api := r.Group("/api/admin")
	api.Use(middleware.JWTAuthMiddleware("admin"))
	{
		api.GET("/commissions/summary", ch.CommissionSummaryHandler)
		api.POST("/bookings/schema-report", handlers.SchemaReportHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// CORSConfig returns the CORS policy shared by all dashboards.
func CORSConfig() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}
