package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fitbook/fitness-booking-backend/internal/class"
)

// Tx is the set of operations available inside a reservation transaction.
// Every capacity mutation goes through here, under the row lock taken by
// SessionForUpdate, so the slot counter and the booking rows commit or roll
// back together.
type Tx interface {
	// SessionForUpdate loads a class row and takes an exclusive lock on it
	// for the remainder of the transaction. Returns class.ErrNotFound if no
	// such class exists.
	SessionForUpdate(ctx context.Context, classID string) (*class.Session, error)

	// HasConfirmed reports whether the user already holds a confirmed
	// booking for the class. Cancelled bookings do not count.
	HasConfirmed(ctx context.Context, userID, classID string) (bool, error)

	// Insert persists a new confirmed booking and fills in its ID and
	// BookedAt. Returns ErrDuplicateBooking on a uniqueness violation.
	Insert(ctx context.Context, b *Booking) error

	// MarkCancelled flips a booking from confirmed to cancelled. It reports
	// false when the booking was not confirmed anymore, which makes
	// cancellation idempotent under concurrency.
	MarkCancelled(ctx context.Context, id string, at time.Time) (bool, error)

	// AdjustSlots moves the class's available slot counter by delta. The
	// write refuses to leave the counter outside [0, total_slots].
	AdjustSlots(ctx context.Context, classID string, delta int) error
}

// Repository is the storage surface of the reservation engine. InTx runs fn
// inside a single transaction; if fn returns an error every write made
// through the Tx is rolled back.
type Repository interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) InTx(ctx context.Context, fn func(tx Tx) error) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(&pgxTx{tx: tx})
	})
}

// bookingSelect joins the denormalized read fields onto the booking row.
const bookingSelect = `
	SELECT b.id, b.user_id, u.email, b.class_id, c.name, c.start_time,
	       b.status, b.booked_at, b.cancelled_at
	FROM public.bookings b
	JOIN public.users u ON u.id = b.user_id
	JOIN public.classes c ON c.id = b.class_id
`

func scanBooking(row pgx.Row, b *Booking) error {
	return row.Scan(
		&b.ID, &b.UserID, &b.UserEmail, &b.ClassID, &b.ClassName, &b.ClassStartTime,
		&b.Status, &b.BookedAt, &b.CancelledAt,
	)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	row := r.pool.QueryRow(ctx, bookingSelect+` WHERE b.id = $1`, id)

	var b Booking
	if err := scanBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.user_id", "u.email", "b.class_id", "c.name", "c.start_time",
		"b.status", "b.booked_at", "b.cancelled_at",
		"count(*) OVER() as total_count",
	).
		From("public.bookings b").
		Join("public.users u ON u.id = b.user_id").
		Join("public.classes c ON c.id = b.class_id")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.ClassID != "" {
		query = query.Where(squirrel.Eq{"b.class_id": filter.ClassID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}

	query = query.OrderBy("b.booked_at DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.UserEmail, &b.ClassID, &b.ClassName, &b.ClassStartTime,
			&b.Status, &b.BookedAt, &b.CancelledAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

type pgxTx struct {
	tx pgx.Tx
}

func (t *pgxTx) SessionForUpdate(ctx context.Context, classID string) (*class.Session, error) {
	const query = `
		SELECT id, name, category, instructor, start_time, duration_minutes,
		       total_slots, available_slots, created_at, updated_at
		FROM public.classes
		WHERE id = $1
		FOR UPDATE
	`
	row := t.tx.QueryRow(ctx, query, classID)

	var s class.Session
	if err := row.Scan(
		&s.ID, &s.Name, &s.Category, &s.Instructor, &s.StartTime, &s.DurationMinutes,
		&s.TotalSlots, &s.AvailableSlots, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, class.ErrNotFound
		}
		return nil, fmt.Errorf("lock class failed: %w", err)
	}
	return &s, nil
}

func (t *pgxTx) HasConfirmed(ctx context.Context, userID, classID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM public.bookings
			WHERE user_id = $1 AND class_id = $2 AND status = 'confirmed'
		)
	`
	var exists bool
	if err := t.tx.QueryRow(ctx, query, userID, classID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check confirmed booking failed: %w", err)
	}
	return exists, nil
}

func (t *pgxTx) Insert(ctx context.Context, b *Booking) error {
	const query = `
		INSERT INTO public.bookings (user_id, class_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, booked_at
	`
	err := t.tx.QueryRow(ctx, query, b.UserID, b.ClassID, b.Status).Scan(&b.ID, &b.BookedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateBooking
		}
		return fmt.Errorf("insert booking failed: %w", err)
	}
	return nil
}

func (t *pgxTx) MarkCancelled(ctx context.Context, id string, at time.Time) (bool, error) {
	const query = `
		UPDATE public.bookings
		SET status = 'cancelled', cancelled_at = $2
		WHERE id = $1 AND status = 'confirmed'
	`
	ct, err := t.tx.Exec(ctx, query, id, at)
	if err != nil {
		return false, fmt.Errorf("cancel booking failed: %w", err)
	}
	return ct.RowsAffected() == 1, nil
}

func (t *pgxTx) AdjustSlots(ctx context.Context, classID string, delta int) error {
	const query = `
		UPDATE public.classes
		SET available_slots = available_slots + $2, updated_at = now()
		WHERE id = $1 AND available_slots + $2 BETWEEN 0 AND total_slots
	`
	ct, err := t.tx.Exec(ctx, query, classID, delta)
	if err != nil {
		return fmt.Errorf("adjust slots failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		// The caller holds the row lock and has already validated the
		// capacity, so hitting this means the accounting is broken.
		return fmt.Errorf("adjust slots by %d on class %s would leave counter out of range", delta, classID)
	}
	return nil
}
