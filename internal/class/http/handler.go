package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fitbook/fitness-booking-backend/internal/class"
	"github.com/fitbook/fitness-booking-backend/internal/pkg/request"
	"github.com/fitbook/fitness-booking-backend/internal/pkg/response"
)

type Handler struct {
	service class.Service
}

func NewHandler(service class.Service) *Handler {
	return &Handler{service: service}
}

// List returns upcoming classes, optionally filtered by category and day.
// The day filter is interpreted in the request's timezone.
func (h *Handler) List(c *gin.Context) {
	var req ListClassesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := class.Filter{
		Category:     req.Category,
		UpcomingOnly: true,
		Page:         req.Page,
		PageSize:     req.PageSize,
	}

	if req.Date != "" {
		loc := request.Location(c)
		day, err := time.ParseInLocation("2006-01-02", req.Date, loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		next := day.AddDate(0, 0, 1)
		filter.From = &day
		filter.To = &next
	}

	sessions, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ClassResponse, len(sessions))
	for i, s := range sessions {
		items[i] = NewClassResponse(s)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	s, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewClassResponse(s))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateClassBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	s, err := h.service.Create(c.Request.Context(), class.CreateRequest{
		Name:            body.Name,
		Category:        body.Category,
		Instructor:      body.Instructor,
		StartTime:       body.StartTime,
		DurationMinutes: body.DurationMinutes,
		TotalSlots:      body.TotalSlots,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewClassResponse(s))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateClassBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	s, err := h.service.Update(c.Request.Context(), id, class.UpdateRequest{
		Name:            body.Name,
		Category:        body.Category,
		Instructor:      body.Instructor,
		StartTime:       body.StartTime,
		DurationMinutes: body.DurationMinutes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewClassResponse(s))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
