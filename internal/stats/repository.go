package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	CountClassesStartingSince(ctx context.Context, since time.Time) (int, error)
	CountBookingsSince(ctx context.Context, since time.Time) (total, confirmed, cancelled int, err error)
	TopClassesByConfirmed(ctx context.Context, since time.Time, limit int) ([]PopularClass, error)
	CountUserBookings(ctx context.Context, userID string) (confirmed, cancelled int, err error)
	UpcomingForUser(ctx context.Context, userID string, now time.Time, limit int) (int, []UpcomingClass, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) CountClassesStartingSince(ctx context.Context, since time.Time) (int, error) {
	const query = `SELECT count(*) FROM public.classes WHERE start_time >= $1`
	var n int
	if err := r.pool.QueryRow(ctx, query, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("count classes failed: %w", err)
	}
	return n, nil
}

func (r *pgxRepository) CountBookingsSince(ctx context.Context, since time.Time) (total, confirmed, cancelled int, err error) {
	const query = `
		SELECT count(*),
		       count(*) FILTER (WHERE status = 'confirmed'),
		       count(*) FILTER (WHERE status = 'cancelled')
		FROM public.bookings
		WHERE booked_at >= $1
	`
	if err := r.pool.QueryRow(ctx, query, since).Scan(&total, &confirmed, &cancelled); err != nil {
		return 0, 0, 0, fmt.Errorf("count bookings failed: %w", err)
	}
	return total, confirmed, cancelled, nil
}

func (r *pgxRepository) TopClassesByConfirmed(ctx context.Context, since time.Time, limit int) ([]PopularClass, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"c.id", "c.name", "c.category", "c.start_time",
		"count(b.id) as confirmed_count",
	).
		From("public.classes c").
		Join("public.bookings b ON b.class_id = c.id AND b.status = 'confirmed'").
		Where(squirrel.GtOrEq{"b.booked_at": since}).
		GroupBy("c.id", "c.name", "c.category", "c.start_time").
		OrderBy("confirmed_count DESC", "c.start_time ASC").
		Limit(uint64(limit))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build top classes query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("top classes failed: %w", err)
	}
	defer rows.Close()

	var result []PopularClass
	for rows.Next() {
		var p PopularClass
		if err := rows.Scan(&p.ClassID, &p.Name, &p.Category, &p.StartTime, &p.ConfirmedBookings); err != nil {
			return nil, fmt.Errorf("scan popular class failed: %w", err)
		}
		result = append(result, p)
	}
	return result, nil
}

func (r *pgxRepository) CountUserBookings(ctx context.Context, userID string) (confirmed, cancelled int, err error) {
	const query = `
		SELECT count(*) FILTER (WHERE status = 'confirmed'),
		       count(*) FILTER (WHERE status = 'cancelled')
		FROM public.bookings
		WHERE user_id = $1
	`
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&confirmed, &cancelled); err != nil {
		return 0, 0, fmt.Errorf("count user bookings failed: %w", err)
	}
	return confirmed, cancelled, nil
}

func (r *pgxRepository) UpcomingForUser(ctx context.Context, userID string, now time.Time, limit int) (int, []UpcomingClass, error) {
	const countQuery = `
		SELECT count(*)
		FROM public.bookings b
		JOIN public.classes c ON c.id = b.class_id
		WHERE b.user_id = $1 AND b.status = 'confirmed' AND c.start_time > $2
	`
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, userID, now).Scan(&total); err != nil {
		return 0, nil, fmt.Errorf("count upcoming failed: %w", err)
	}

	const listQuery = `
		SELECT b.id, c.id, c.name, c.start_time
		FROM public.bookings b
		JOIN public.classes c ON c.id = b.class_id
		WHERE b.user_id = $1 AND b.status = 'confirmed' AND c.start_time > $2
		ORDER BY c.start_time ASC
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, listQuery, userID, now, limit)
	if err != nil {
		return 0, nil, fmt.Errorf("list upcoming failed: %w", err)
	}
	defer rows.Close()

	var next []UpcomingClass
	for rows.Next() {
		var u UpcomingClass
		if err := rows.Scan(&u.BookingID, &u.ClassID, &u.ClassName, &u.StartTime); err != nil {
			return 0, nil, fmt.Errorf("scan upcoming failed: %w", err)
		}
		next = append(next, u)
	}
	return total, next, nil
}
