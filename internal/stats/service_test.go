package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	classes   int
	total     int
	confirmed int
	cancelled int
	popular   []PopularClass

	userConfirmed int
	userCancelled int
	upcoming      int
	next          []UpcomingClass

	gotSince time.Time
	gotLimit int
}

func (r *fakeRepo) CountClassesStartingSince(ctx context.Context, since time.Time) (int, error) {
	r.gotSince = since
	return r.classes, nil
}

func (r *fakeRepo) CountBookingsSince(ctx context.Context, since time.Time) (int, int, int, error) {
	return r.total, r.confirmed, r.cancelled, nil
}

func (r *fakeRepo) TopClassesByConfirmed(ctx context.Context, since time.Time, limit int) ([]PopularClass, error) {
	r.gotLimit = limit
	return r.popular, nil
}

func (r *fakeRepo) CountUserBookings(ctx context.Context, userID string) (int, int, error) {
	return r.userConfirmed, r.userCancelled, nil
}

func (r *fakeRepo) UpcomingForUser(ctx context.Context, userID string, now time.Time, limit int) (int, []UpcomingClass, error) {
	return r.upcoming, r.next, nil
}

func TestOverview(t *testing.T) {
	repo := &fakeRepo{
		classes:   7,
		total:     40,
		confirmed: 30,
		cancelled: 10,
		popular:   []PopularClass{{Name: "Sunrise Yoga", ConfirmedBookings: 9}},
	}
	svc := NewService(repo)

	o, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 30, o.WindowDays)
	assert.Equal(t, 7, o.ClassesScheduled)
	assert.Equal(t, 40, o.TotalBookings)
	assert.Equal(t, 30, o.ConfirmedBookings)
	assert.Equal(t, 10, o.CancelledBookings)
	require.Len(t, o.PopularClasses, 1)
	assert.Equal(t, "Sunrise Yoga", o.PopularClasses[0].Name)

	assert.Equal(t, 5, repo.gotLimit)
	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, -30), repo.gotSince, time.Minute)
}

func TestForUser(t *testing.T) {
	repo := &fakeRepo{
		userConfirmed: 4,
		userCancelled: 2,
		upcoming:      3,
		next:          []UpcomingClass{{ClassName: "Evening Zumba"}},
	}
	svc := NewService(repo)

	o, err := svc.ForUser(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 4, o.ConfirmedBookings)
	assert.Equal(t, 2, o.CancelledBookings)
	assert.Equal(t, 3, o.UpcomingClasses)
	require.Len(t, o.NextClasses, 1)
	assert.Equal(t, "Evening Zumba", o.NextClasses[0].ClassName)
}
