package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	group.Use(authMiddleware)
	{
		group.POST("", h.Create)
		group.GET("", h.List)
		group.GET("/my-bookings", h.MyBookings)
		group.POST("/check-availability", h.CheckAvailability)
		group.GET("/:id", h.Get)
		group.GET("/venue/:venueId", h.ListByVenue)
		group.PUT("/:id/status", h.UpdateStatus)
		group.DELETE("/:id", h.Cancel)
	}
}
