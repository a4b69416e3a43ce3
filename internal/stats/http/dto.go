package http

import (
	"time"

	"github.com/fitbook/fitness-booking-backend/internal/stats"
)

type PopularClassResponse struct {
	ClassID           string    `json:"class_id"`
	Name              string    `json:"name"`
	Category          string    `json:"category"`
	StartTime         time.Time `json:"start_time"`
	ConfirmedBookings int       `json:"confirmed_bookings"`
}

type OverviewResponse struct {
	WindowDays        int                    `json:"window_days"`
	ClassesScheduled  int                    `json:"classes_scheduled"`
	TotalBookings     int                    `json:"total_bookings"`
	ConfirmedBookings int                    `json:"confirmed_bookings"`
	CancelledBookings int                    `json:"cancelled_bookings"`
	PopularClasses    []PopularClassResponse `json:"popular_classes"`
}

func NewOverviewResponse(o *stats.Overview) OverviewResponse {
	popular := make([]PopularClassResponse, len(o.PopularClasses))
	for i, p := range o.PopularClasses {
		popular[i] = PopularClassResponse{
			ClassID:           p.ClassID,
			Name:              p.Name,
			Category:          p.Category,
			StartTime:         p.StartTime,
			ConfirmedBookings: p.ConfirmedBookings,
		}
	}
	return OverviewResponse{
		WindowDays:        o.WindowDays,
		ClassesScheduled:  o.ClassesScheduled,
		TotalBookings:     o.TotalBookings,
		ConfirmedBookings: o.ConfirmedBookings,
		CancelledBookings: o.CancelledBookings,
		PopularClasses:    popular,
	}
}

type UpcomingClassResponse struct {
	BookingID string    `json:"booking_id"`
	ClassID   string    `json:"class_id"`
	ClassName string    `json:"class_name"`
	StartTime time.Time `json:"start_time"`
}

type UserOverviewResponse struct {
	ConfirmedBookings int                     `json:"confirmed_bookings"`
	CancelledBookings int                     `json:"cancelled_bookings"`
	UpcomingClasses   int                     `json:"upcoming_classes"`
	NextClasses       []UpcomingClassResponse `json:"next_classes"`
}

func NewUserOverviewResponse(o *stats.UserOverview) UserOverviewResponse {
	next := make([]UpcomingClassResponse, len(o.NextClasses))
	for i, u := range o.NextClasses {
		next[i] = UpcomingClassResponse{
			BookingID: u.BookingID,
			ClassID:   u.ClassID,
			ClassName: u.ClassName,
			StartTime: u.StartTime,
		}
	}
	return UserOverviewResponse{
		ConfirmedBookings: o.ConfirmedBookings,
		CancelledBookings: o.CancelledBookings,
		UpcomingClasses:   o.UpcomingClasses,
		NextClasses:       next,
	}
}
