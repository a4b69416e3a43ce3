package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	byEmail map[string]*User
	byID    map[string]*User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byEmail: make(map[string]*User),
		byID:    make(map[string]*User),
	}
}

func (r *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) Create(ctx context.Context, u *User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return ErrEmailAlreadyUsed
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	cp := *u
	r.byEmail[u.Email] = &cp
	r.byID[u.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	if u, ok := r.byID[id]; ok {
		u.LastLoginAt = &t
	}
	return nil
}

// plainHasher avoids bcrypt cost in tests.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (plainHasher) Compare(hash, plain string) error {
	if hash != "hashed:"+plain {
		return errors.New("mismatch")
	}
	return nil
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success normalizes email", func(t *testing.T) {
		svc := NewService(newFakeRepo(), plainHasher{})

		u, err := svc.Register(ctx, "  User@Test.COM ", "password123", "Neko")
		require.NoError(t, err)
		assert.Equal(t, "user@test.com", u.Email)
		assert.True(t, u.IsActive)
		assert.False(t, u.IsSystemAdmin)
		require.NotNil(t, u.DisplayName)
		assert.Equal(t, "Neko", *u.DisplayName)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		svc := NewService(newFakeRepo(), plainHasher{})

		_, err := svc.Register(ctx, "user@test.com", "password123", "")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "USER@test.com", "password123", "")
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("Short password", func(t *testing.T) {
		svc := NewService(newFakeRepo(), plainHasher{})

		_, err := svc.Register(ctx, "user@test.com", "short", "")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("Missing email", func(t *testing.T) {
		svc := NewService(newFakeRepo(), plainHasher{})

		_, err := svc.Register(ctx, "   ", "password123", "")
		assert.ErrorIs(t, err, ErrEmailRequired)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fakeRepo, Service) {
		repo := newFakeRepo()
		svc := NewService(repo, plainHasher{})
		_, err := svc.Register(ctx, "user@test.com", "password123", "")
		require.NoError(t, err)
		return repo, svc
	}

	t.Run("Success records last login", func(t *testing.T) {
		repo, svc := setup(t)

		u, err := svc.Login(ctx, "user@test.com", "password123")
		require.NoError(t, err)
		assert.NotNil(t, repo.byID[u.ID].LastLoginAt)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, svc := setup(t)

		_, err := svc.Login(ctx, "user@test.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown email", func(t *testing.T) {
		_, svc := setup(t)

		_, err := svc.Login(ctx, "ghost@test.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Inactive user", func(t *testing.T) {
		repo, svc := setup(t)
		repo.byEmail["user@test.com"].IsActive = false

		_, err := svc.Login(ctx, "user@test.com", "password123")
		assert.ErrorIs(t, err, ErrInactiveUser)
	})
}
