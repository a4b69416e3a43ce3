package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/stats")
	group.Use(authMiddleware)
	{
		group.GET("", adminMiddleware, h.Overview)
		group.GET("/me", h.Me)
	}
}
