package routes

import (
	"time"

	"spacebook/handlers"
	"spacebook/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers wired in main.
type HandlerBundle struct {
	Booking  *handlers.BookingHandler
	Property *handlers.PropertyHandler
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.HealthHandler)

	RegisterBookingRoutes(r, hb)
	RegisterPropertyRoutes(r, hb)
}

// RegisterPropertyRoutes registers the property catalog endpoints.
func RegisterPropertyRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/properties")
	{
		api.GET("", hb.Property.ListProperties)
		api.GET("/id/:id", hb.Property.GetProperty)

		// Mutations and owner views require authentication.
		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.POST("", hb.Property.CreateProperty)
		protected.GET("/mine", hb.Property.MyProperties)
		protected.DELETE("/id/:id", hb.Property.DeleteProperty)
	}
}
