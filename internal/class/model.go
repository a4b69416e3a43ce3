package class

import (
	"net/http"
	"time"

	"github.com/fitbook/fitness-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "class not found")
	ErrEmptyName          = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidCategory    = apperror.New(http.StatusBadRequest, "invalid class category")
	ErrInvalidSlots       = apperror.New(http.StatusBadRequest, "total slots must be a positive integer")
	ErrInvalidDuration    = apperror.New(http.StatusBadRequest, "duration must be a positive number of minutes")
	ErrStartTimeNotFuture = apperror.New(http.StatusBadRequest, "class must be scheduled for a future time")
)

// Category is the kind of activity a session offers.
type Category string

const (
	CategoryYoga  Category = "yoga"
	CategoryZumba Category = "zumba"
	CategoryHIIT  Category = "hiit"
)

// Categories lists the currently offered class categories. The column is
// plain text, so extending the offering is a code change, not a migration.
var Categories = []Category{CategoryYoga, CategoryZumba, CategoryHIIT}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Session is a scheduled, capacity-bounded class that users reserve seats in.
//
// AvailableSlots is the capacity counter the reservation engine maintains:
// at every commit it equals TotalSlots minus the number of confirmed
// bookings referencing this session. Only the reservation engine writes it.
type Session struct {
	ID              string
	Name            string
	Category        Category
	Instructor      string
	StartTime       time.Time
	DurationMinutes int
	TotalSlots      int
	AvailableSlots  int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsUpcoming reports whether the session has not started yet.
func (s *Session) IsUpcoming(now time.Time) bool {
	return s.StartTime.After(now)
}

// IsBookable reports whether a seat can currently be reserved: the session
// must still be in the future and have at least one free slot. Sessions that
// have started keep their confirmed bookings; they just stop being bookable.
func (s *Session) IsBookable(now time.Time) bool {
	return s.IsUpcoming(now) && s.AvailableSlots > 0
}

// Filter defines parameters for listing class sessions.
type Filter struct {
	Category     string
	From         *time.Time // sessions starting at or after this time
	To           *time.Time // sessions starting before this time
	UpcomingOnly bool
	Page         int
	PageSize     int
}
