package routes

import (
	"spacebook/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the booking engine.
// Accept/reject are exposed as both POST and PUT, matching existing
// clients.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.POST("", hb.Booking.CreateBooking)
		api.POST("/id/:id/accept", hb.Booking.AcceptBooking)
		api.PUT("/id/:id/accept", hb.Booking.AcceptBooking)
		api.POST("/id/:id/reject", hb.Booking.RejectBooking)
		api.PUT("/id/:id/reject", hb.Booking.RejectBooking)
		api.GET("/me", hb.Booking.MyBookings)
		api.GET("/owner", hb.Booking.OwnerBookings)
	}
}
