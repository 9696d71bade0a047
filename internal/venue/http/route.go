package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, managerMiddleware gin.HandlerFunc) {
	group := g.Group("/venues")

	group.Use(authMiddleware)
	{
		// Customers may search and browse.
		group.GET("/search", h.Search)
		group.GET("", h.List)
		group.GET("/:id", h.Get)

		// Mutations require an owner or manager role.
		group.POST("", managerMiddleware, h.Create)
		group.PUT("/:id", managerMiddleware, h.Update)
		group.DELETE("/:id", managerMiddleware, h.Delete)
	}
}
