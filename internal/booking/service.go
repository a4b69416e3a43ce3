package booking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/fitbook/fitness-booking-backend/internal/class"
)

type Service interface {
	// Create reserves one seat in the class for the user. On success the
	// returned booking is confirmed and the class's available slot counter
	// has been decremented in the same transaction.
	Create(ctx context.Context, userID, classID string) (*Booking, error)

	GetByID(ctx context.Context, id, actorID string, isAdmin bool) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// Cancel releases the booking's seat. The returned bool reports whether
	// this call performed the cancellation; false means the booking was
	// already cancelled and nothing changed.
	Cancel(ctx context.Context, id, actorID string, isAdmin bool) (bool, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Create runs the reservation protocol: lock the class row, validate it is
// still bookable and the user holds no confirmed booking for it, then insert
// the booking and decrement the slot counter. All of it commits atomically,
// so two users racing for the last seat serialize on the row lock and the
// loser sees zero available slots.
func (s *service) Create(ctx context.Context, userID, classID string) (*Booking, error) {
	b := &Booking{
		UserID:  userID,
		ClassID: classID,
		Status:  StatusConfirmed,
	}

	err := s.repo.InTx(ctx, func(tx Tx) error {
		session, err := tx.SessionForUpdate(ctx, classID)
		if err != nil {
			if errors.Is(err, class.ErrNotFound) {
				return ErrClassNotFound
			}
			return err
		}

		if !session.IsBookable(time.Now().UTC()) {
			return ErrClassUnavailable
		}

		booked, err := tx.HasConfirmed(ctx, userID, classID)
		if err != nil {
			return err
		}
		if booked {
			return ErrDuplicateBooking
		}

		if err := tx.Insert(ctx, b); err != nil {
			return err
		}
		if err := tx.AdjustSlots(ctx, classID, -1); err != nil {
			return err
		}

		b.ClassName = session.Name
		b.ClassStartTime = session.StartTime
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("booking created",
		zap.String("booking_id", b.ID),
		zap.String("user_id", userID),
		zap.String("class_id", classID),
	)

	return b, nil
}

func (s *service) GetByID(ctx context.Context, id, actorID string, isAdmin bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && b.UserID != actorID {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

// Cancel releases a seat back to the class. The status flip is a conditional
// update under the class row lock, so concurrent cancels of the same booking
// agree on a single winner and the slot is returned exactly once.
func (s *service) Cancel(ctx context.Context, id, actorID string, isAdmin bool) (bool, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if !isAdmin && b.UserID != actorID {
		return false, ErrPermissionDenied
	}
	if b.Status != StatusConfirmed {
		return false, nil
	}

	var cancelled bool
	err = s.repo.InTx(ctx, func(tx Tx) error {
		if _, err := tx.SessionForUpdate(ctx, b.ClassID); err != nil {
			return err
		}

		ok, err := tx.MarkCancelled(ctx, id, time.Now().UTC())
		if err != nil {
			return err
		}
		if !ok {
			// Someone else cancelled it between our read and the lock.
			return nil
		}

		if err := tx.AdjustSlots(ctx, b.ClassID, 1); err != nil {
			return err
		}
		cancelled = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if cancelled {
		zap.L().Info("booking cancelled",
			zap.String("booking_id", id),
			zap.String("user_id", b.UserID),
			zap.String("class_id", b.ClassID),
		)
	}

	return cancelled, nil
}
