package http

import (
	"time"

	"github.com/fitbook/fitness-booking-backend/internal/class"
	"github.com/fitbook/fitness-booking-backend/internal/pkg/request"
)

// ListClassesRequest defines query parameters for listing classes.
// Date is interpreted in the request's timezone (X-Timezone header).
type ListClassesRequest struct {
	request.ListParams
	Category string `form:"type" binding:"omitempty,oneof=yoga zumba hiit"`
	Date     string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

type ClassResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Instructor      string    `json:"instructor"`
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	TotalSlots      int       `json:"total_slots"`
	AvailableSlots  int       `json:"available_slots"`
	IsBookable      bool      `json:"is_bookable"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ClassTag is a brief representation of a class.
type ClassTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewClassResponse(s *class.Session) ClassResponse {
	return ClassResponse{
		ID:              s.ID,
		Name:            s.Name,
		Category:        string(s.Category),
		Instructor:      s.Instructor,
		StartTime:       s.StartTime,
		DurationMinutes: s.DurationMinutes,
		TotalSlots:      s.TotalSlots,
		AvailableSlots:  s.AvailableSlots,
		IsBookable:      s.IsBookable(time.Now().UTC()),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

type CreateClassBody struct {
	Name            string    `json:"name" binding:"required"`
	Category        string    `json:"category" binding:"required,oneof=yoga zumba hiit"`
	Instructor      string    `json:"instructor" binding:"required"`
	StartTime       time.Time `json:"start_time" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required,min=1"`
	TotalSlots      int       `json:"total_slots" binding:"required,min=1"`
}

type UpdateClassBody struct {
	Name            *string    `json:"name"`
	Category        *string    `json:"category" binding:"omitempty,oneof=yoga zumba hiit"`
	Instructor      *string    `json:"instructor"`
	StartTime       *time.Time `json:"start_time"`
	DurationMinutes *int       `json:"duration_minutes" binding:"omitempty,min=1"`
}
