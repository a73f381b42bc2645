package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tripdesk/handlers"
	"tripdesk/middleware"
	"tripdesk/utils"
)

// RegisterProductRoutes registers product and calendar endpoints.
func RegisterProductRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/products")
	{
		api.GET("/:id", hb.GetProductHandler)
		api.GET("/:id/calendar", hb.MonthCalendarHandler)

		// Forced refreshes hit the partner API; keep them authenticated.
		api.POST("/:id/refresh", middleware.JWTAuthMiddleware(), hb.RefreshProductHandler)
	}
}

// RegisterReservationRoutes sets up the endpoints for quoting and booking.
func RegisterReservationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reservations")
	{
		api.POST("/quote", hb.QuoteHandler)
		api.POST("", middleware.JWTAuthMiddleware(), hb.CreateReservationHandler)
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
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterProductRoutes(r, hb)
	RegisterReservationRoutes(r, hb)
	RegisterHealthRoute(r)
}
