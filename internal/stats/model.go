package stats

import "time"

// Overview aggregates studio activity over a trailing window.
type Overview struct {
	WindowDays        int
	ClassesScheduled  int
	TotalBookings     int
	ConfirmedBookings int
	CancelledBookings int
	PopularClasses    []PopularClass
}

// PopularClass ranks a class by the number of confirmed bookings it holds.
type PopularClass struct {
	ClassID           string
	Name              string
	Category          string
	StartTime         time.Time
	ConfirmedBookings int
}

// UserOverview summarizes one user's booking activity.
type UserOverview struct {
	ConfirmedBookings int
	CancelledBookings int
	UpcomingClasses   int
	NextClasses       []UpcomingClass
}

// UpcomingClass is a confirmed future booking of the user.
type UpcomingClass struct {
	BookingID string
	ClassID   string
	ClassName string
	StartTime time.Time
}
