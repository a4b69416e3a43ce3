package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitbook/fitness-booking-backend/internal/auth"
	"github.com/fitbook/fitness-booking-backend/internal/pkg/response"
	"github.com/fitbook/fitness-booking-backend/internal/stats"
)

type Handler struct {
	service stats.Service
}

func NewHandler(service stats.Service) *Handler {
	return &Handler{service: service}
}

// Overview returns studio-wide activity numbers for the last 30 days.
func (h *Handler) Overview(c *gin.Context) {
	o, err := h.service.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewOverviewResponse(o))
}

// Me returns the authenticated user's booking activity.
func (h *Handler) Me(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	o, err := h.service.ForUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewUserOverviewResponse(o))
}
