package class

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	sessions map[string]*Session
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sessions: make(map[string]*Session)}
}

func (r *fakeRepo) Create(ctx context.Context, s *Session) error {
	s.ID = uuid.NewString()
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*Session, int, error) {
	var result []*Session
	for _, s := range r.sessions {
		if filter.Category != "" && string(s.Category) != filter.Category {
			continue
		}
		cp := *s
		result = append(result, &cp)
	}
	return result, len(result), nil
}

func (r *fakeRepo) Update(ctx context.Context, s *Session) error {
	if _, ok := r.sessions[s.ID]; !ok {
		return ErrNotFound
	}
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

func validCreateRequest() CreateRequest {
	return CreateRequest{
		Name:            "Sunrise Yoga",
		Category:        "yoga",
		Instructor:      "Alice",
		StartTime:       time.Now().UTC().Add(48 * time.Hour),
		DurationMinutes: 60,
		TotalSlots:      10,
	}
}

func TestCreateClass(t *testing.T) {
	ctx := context.Background()

	t.Run("Success opens all slots", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		s, err := svc.Create(ctx, validCreateRequest())
		require.NoError(t, err)
		assert.NotEmpty(t, s.ID)
		assert.Equal(t, 10, s.TotalSlots)
		assert.Equal(t, 10, s.AvailableSlots)
	})

	t.Run("Validation", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		cases := []struct {
			name    string
			mutate  func(*CreateRequest)
			wantErr error
		}{
			{"Empty name", func(r *CreateRequest) { r.Name = "   " }, ErrEmptyName},
			{"Unknown category", func(r *CreateRequest) { r.Category = "crossfit" }, ErrInvalidCategory},
			{"Zero slots", func(r *CreateRequest) { r.TotalSlots = 0 }, ErrInvalidSlots},
			{"Negative slots", func(r *CreateRequest) { r.TotalSlots = -3 }, ErrInvalidSlots},
			{"Zero duration", func(r *CreateRequest) { r.DurationMinutes = 0 }, ErrInvalidDuration},
			{"Past start time", func(r *CreateRequest) { r.StartTime = time.Now().UTC().Add(-time.Hour) }, ErrStartTimeNotFuture},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				req := validCreateRequest()
				tc.mutate(&req)
				_, err := svc.Create(ctx, req)
				assert.ErrorIs(t, err, tc.wantErr)
			})
		}
	})
}

func TestUpdateClass(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	s, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	t.Run("Partial update keeps other fields", func(t *testing.T) {
		newName := "Sunset Yoga"
		updated, err := svc.Update(ctx, s.ID, UpdateRequest{Name: &newName})
		require.NoError(t, err)
		assert.Equal(t, "Sunset Yoga", updated.Name)
		assert.Equal(t, CategoryYoga, updated.Category)
		assert.Equal(t, 10, updated.AvailableSlots)
	})

	t.Run("Invalid category rejected", func(t *testing.T) {
		bad := "crossfit"
		_, err := svc.Update(ctx, s.ID, UpdateRequest{Category: &bad})
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("Unknown class", func(t *testing.T) {
		name := "x"
		_, err := svc.Update(ctx, uuid.NewString(), UpdateRequest{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteClass(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	s, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, s.ID))
	assert.ErrorIs(t, svc.Delete(ctx, s.ID), ErrNotFound)
}
