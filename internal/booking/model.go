package booking

import (
	"net/http"
	"time"

	"github.com/fitbook/fitness-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrClassNotFound    = apperror.New(http.StatusNotFound, "class not found")
	ErrClassUnavailable = apperror.New(http.StatusConflict, "class is not available for booking")
	ErrDuplicateBooking = apperror.New(http.StatusConflict, "you have already booked this class")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "you do not have permission to access this booking")
)

// Status is the lifecycle state of a booking. A booking is created confirmed
// and can only move to cancelled; there is no way back.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Booking is one user's reserved seat in a class session.
//
// UserEmail, ClassName and ClassStartTime are denormalized read fields filled
// in by list and get queries; they are not stored on the bookings row.
type Booking struct {
	ID             string
	UserID         string
	UserEmail      string
	ClassID        string
	ClassName      string
	ClassStartTime time.Time
	Status         Status
	BookedAt       time.Time
	CancelledAt    *time.Time
}

// Filter defines parameters for listing bookings.
type Filter struct {
	UserID   string
	ClassID  string
	Status   string
	Page     int
	PageSize int
}
