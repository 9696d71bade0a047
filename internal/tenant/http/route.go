package http

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts tenant endpoints under the given group.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/tenants")
	{
		group.POST("", h.Create)
		group.GET("/:id", authMiddleware, h.Get)
	}
}
