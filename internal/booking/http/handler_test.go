package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitbook/fitness-booking-backend/internal/booking"
	"github.com/fitbook/fitness-booking-backend/internal/user"
)

type stubBookingService struct {
	createFn func(ctx context.Context, userID, classID string) (*booking.Booking, error)
	getFn    func(ctx context.Context, id, actorID string, isAdmin bool) (*booking.Booking, error)
	listFn   func(ctx context.Context, filter booking.Filter) ([]*booking.Booking, int, error)
	cancelFn func(ctx context.Context, id, actorID string, isAdmin bool) (bool, error)
}

func (s *stubBookingService) Create(ctx context.Context, userID, classID string) (*booking.Booking, error) {
	return s.createFn(ctx, userID, classID)
}

func (s *stubBookingService) GetByID(ctx context.Context, id, actorID string, isAdmin bool) (*booking.Booking, error) {
	return s.getFn(ctx, id, actorID, isAdmin)
}

func (s *stubBookingService) List(ctx context.Context, filter booking.Filter) ([]*booking.Booking, int, error) {
	return s.listFn(ctx, filter)
}

func (s *stubBookingService) Cancel(ctx context.Context, id, actorID string, isAdmin bool) (bool, error) {
	return s.cancelFn(ctx, id, actorID, isAdmin)
}

type stubUserService struct {
	admins map[string]bool
}

func (s *stubUserService) Register(ctx context.Context, email, password, displayName string) (*user.User, error) {
	panic("not used")
}

func (s *stubUserService) Login(ctx context.Context, email, password string) (*user.User, error) {
	panic("not used")
}

func (s *stubUserService) GetByID(ctx context.Context, id string) (*user.User, error) {
	return &user.User{ID: id, IsSystemAdmin: s.admins[id]}, nil
}

// fakeAuth stands in for the JWT middleware and injects a fixed user.
func fakeAuth(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func newTestRouter(svc booking.Service, users *stubUserService, actorID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc, users)
	v1 := r.Group("/v1")
	RegisterRoutes(v1, h, fakeAuth(actorID))
	return r
}

func perform(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleBooking(userID string) *booking.Booking {
	return &booking.Booking{
		ID:             uuid.NewString(),
		UserID:         userID,
		ClassID:        uuid.NewString(),
		ClassName:      "Sunrise Yoga",
		ClassStartTime: time.Now().UTC().Add(24 * time.Hour),
		Status:         booking.StatusConfirmed,
		BookedAt:       time.Now().UTC(),
	}
}

func TestCreateBookingHandler(t *testing.T) {
	actor := uuid.NewString()
	users := &stubUserService{admins: map[string]bool{}}

	t.Run("Created", func(t *testing.T) {
		b := sampleBooking(actor)
		svc := &stubBookingService{
			createFn: func(ctx context.Context, userID, classID string) (*booking.Booking, error) {
				assert.Equal(t, actor, userID)
				return b, nil
			},
		}
		r := newTestRouter(svc, users, actor)

		w := perform(r, http.MethodPost, "/v1/bookings", gin.H{"class_id": b.ClassID})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, b.ID, resp.ID)
		assert.Equal(t, "confirmed", resp.Status)
	})

	t.Run("Missing class_id", func(t *testing.T) {
		r := newTestRouter(&stubBookingService{}, users, actor)

		w := perform(r, http.MethodPost, "/v1/bookings", gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Service error mapping", func(t *testing.T) {
		cases := []struct {
			name string
			err  error
			code int
		}{
			{"Class not found", booking.ErrClassNotFound, http.StatusNotFound},
			{"Class unavailable", booking.ErrClassUnavailable, http.StatusConflict},
			{"Duplicate booking", booking.ErrDuplicateBooking, http.StatusConflict},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				svc := &stubBookingService{
					createFn: func(ctx context.Context, userID, classID string) (*booking.Booking, error) {
						return nil, tc.err
					},
				}
				r := newTestRouter(svc, users, actor)

				w := perform(r, http.MethodPost, "/v1/bookings", gin.H{"class_id": uuid.NewString()})
				assert.Equal(t, tc.code, w.Code)
			})
		}
	})
}

func TestCancelBookingHandler(t *testing.T) {
	actor := uuid.NewString()
	users := &stubUserService{admins: map[string]bool{}}

	t.Run("Cancelled", func(t *testing.T) {
		b := sampleBooking(actor)
		b.Status = booking.StatusCancelled
		now := time.Now().UTC()
		b.CancelledAt = &now

		svc := &stubBookingService{
			cancelFn: func(ctx context.Context, id, actorID string, isAdmin bool) (bool, error) {
				return true, nil
			},
			getFn: func(ctx context.Context, id, actorID string, isAdmin bool) (*booking.Booking, error) {
				return b, nil
			},
		}
		r := newTestRouter(svc, users, actor)

		w := perform(r, http.MethodPost, "/v1/bookings/"+b.ID+"/cancel", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "cancelled", resp.Status)
		assert.NotNil(t, resp.CancelledAt)
	})

	t.Run("Already cancelled", func(t *testing.T) {
		svc := &stubBookingService{
			cancelFn: func(ctx context.Context, id, actorID string, isAdmin bool) (bool, error) {
				return false, nil
			},
		}
		r := newTestRouter(svc, users, actor)

		w := perform(r, http.MethodPost, "/v1/bookings/"+uuid.NewString()+"/cancel", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Not found", func(t *testing.T) {
		svc := &stubBookingService{
			cancelFn: func(ctx context.Context, id, actorID string, isAdmin bool) (bool, error) {
				return false, booking.ErrNotFound
			},
		}
		r := newTestRouter(svc, users, actor)

		w := perform(r, http.MethodPost, "/v1/bookings/"+uuid.NewString()+"/cancel", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Forbidden", func(t *testing.T) {
		svc := &stubBookingService{
			cancelFn: func(ctx context.Context, id, actorID string, isAdmin bool) (bool, error) {
				return false, booking.ErrPermissionDenied
			},
		}
		r := newTestRouter(svc, users, actor)

		w := perform(r, http.MethodPost, "/v1/bookings/"+uuid.NewString()+"/cancel", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Invalid UUID", func(t *testing.T) {
		r := newTestRouter(&stubBookingService{}, users, actor)

		w := perform(r, http.MethodPost, "/v1/bookings/not-a-uuid/cancel", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListBookingsHandler(t *testing.T) {
	actor := uuid.NewString()
	other := uuid.NewString()

	t.Run("Regular user is scoped to self", func(t *testing.T) {
		users := &stubUserService{admins: map[string]bool{}}
		svc := &stubBookingService{
			listFn: func(ctx context.Context, filter booking.Filter) ([]*booking.Booking, int, error) {
				assert.Equal(t, actor, filter.UserID)
				return nil, 0, nil
			},
		}
		r := newTestRouter(svc, users, actor)

		// Trying to read someone else's bookings is silently overridden.
		w := perform(r, http.MethodGet, "/v1/bookings?user_id="+other, nil)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Admin can scope by any user", func(t *testing.T) {
		users := &stubUserService{admins: map[string]bool{actor: true}}
		svc := &stubBookingService{
			listFn: func(ctx context.Context, filter booking.Filter) ([]*booking.Booking, int, error) {
				assert.Equal(t, other, filter.UserID)
				return []*booking.Booking{sampleBooking(other)}, 1, nil
			},
		}
		r := newTestRouter(svc, users, actor)

		w := perform(r, http.MethodGet, "/v1/bookings?user_id="+other, nil)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Invalid status filter", func(t *testing.T) {
		users := &stubUserService{admins: map[string]bool{}}
		r := newTestRouter(&stubBookingService{}, users, actor)

		w := perform(r, http.MethodGet, "/v1/bookings?status=pending", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
