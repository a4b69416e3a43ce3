package http

import (
	"time"

	"github.com/fitbook/fitness-booking-backend/internal/booking"
	"github.com/fitbook/fitness-booking-backend/internal/pkg/request"
)

type CreateBookingBody struct {
	ClassID string `json:"class_id" binding:"required,uuid"`
}

// ListBookingsRequest defines query parameters for listing bookings.
// The user_id filter is only honored for system admins; regular users
// always see their own bookings.
type ListBookingsRequest struct {
	request.ListParams
	UserID  string `form:"user_id" binding:"omitempty,uuid"`
	ClassID string `form:"class_id" binding:"omitempty,uuid"`
	Status  string `form:"status" binding:"omitempty,oneof=confirmed cancelled"`
}

type BookingResponse struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	UserEmail      string     `json:"user_email,omitempty"`
	ClassID        string     `json:"class_id"`
	ClassName      string     `json:"class_name,omitempty"`
	ClassStartTime time.Time  `json:"class_start_time"`
	Status         string     `json:"status"`
	BookedAt       time.Time  `json:"booked_at"`
	CancelledAt    *time.Time `json:"cancelled_at,omitempty"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:             b.ID,
		UserID:         b.UserID,
		UserEmail:      b.UserEmail,
		ClassID:        b.ClassID,
		ClassName:      b.ClassName,
		ClassStartTime: b.ClassStartTime,
		Status:         string(b.Status),
		BookedAt:       b.BookedAt,
		CancelledAt:    b.CancelledAt,
	}
}
