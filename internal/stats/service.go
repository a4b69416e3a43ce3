package stats

import (
	"context"
	"time"
)

const (
	overviewWindowDays = 30
	popularClassLimit  = 5
	nextClassLimit     = 5
)

type Service interface {
	Overview(ctx context.Context) (*Overview, error)
	ForUser(ctx context.Context, userID string) (*UserOverview, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Overview(ctx context.Context) (*Overview, error) {
	now := time.Now().UTC()
	since := now.AddDate(0, 0, -overviewWindowDays)

	classes, err := s.repo.CountClassesStartingSince(ctx, since)
	if err != nil {
		return nil, err
	}

	total, confirmed, cancelled, err := s.repo.CountBookingsSince(ctx, since)
	if err != nil {
		return nil, err
	}

	popular, err := s.repo.TopClassesByConfirmed(ctx, since, popularClassLimit)
	if err != nil {
		return nil, err
	}

	return &Overview{
		WindowDays:        overviewWindowDays,
		ClassesScheduled:  classes,
		TotalBookings:     total,
		ConfirmedBookings: confirmed,
		CancelledBookings: cancelled,
		PopularClasses:    popular,
	}, nil
}

func (s *service) ForUser(ctx context.Context, userID string) (*UserOverview, error) {
	confirmed, cancelled, err := s.repo.CountUserBookings(ctx, userID)
	if err != nil {
		return nil, err
	}

	upcoming, next, err := s.repo.UpcomingForUser(ctx, userID, time.Now().UTC(), nextClassLimit)
	if err != nil {
		return nil, err
	}

	return &UserOverview{
		ConfirmedBookings: confirmed,
		CancelledBookings: cancelled,
		UpcomingClasses:   upcoming,
		NextClasses:       next,
	}, nil
}
