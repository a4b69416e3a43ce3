package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all user-related routes (including Auth).
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	// Public Routes
	usersGroup := g.Group("/users")
	{
		usersGroup.POST("/register", h.Register)
		usersGroup.POST("/login", h.Login)
	}

	// Authenticated Routes
	usersGroup.GET("/me", authMiddleware, h.Me)
}
