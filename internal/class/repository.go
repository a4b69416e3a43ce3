package class

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository stores class definitions and serves unlocked reads.
// Capacity mutations do NOT go through here; they happen inside the
// reservation engine's transaction, which is the sole writer of
// available_slots.
type Repository interface {
	Create(ctx context.Context, s *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	List(ctx context.Context, filter Filter) ([]*Session, int, error)
	Update(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, s *Session) error {
	const query = `
		INSERT INTO public.classes (name, category, instructor, start_time, duration_minutes, total_slots, available_slots)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		s.Name, s.Category, s.Instructor, s.StartTime, s.DurationMinutes, s.TotalSlots, s.AvailableSlots,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create class failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Session, error) {
	const query = `
		SELECT id, name, category, instructor, start_time, duration_minutes,
		       total_slots, available_slots, created_at, updated_at
		FROM public.classes
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	var s Session
	if err := row.Scan(
		&s.ID, &s.Name, &s.Category, &s.Instructor, &s.StartTime, &s.DurationMinutes,
		&s.TotalSlots, &s.AvailableSlots, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get class failed: %w", err)
	}
	return &s, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Session, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "category", "instructor", "start_time", "duration_minutes",
		"total_slots", "available_slots", "created_at", "updated_at",
		"count(*) OVER() as total_count",
	).From("public.classes")

	if filter.Category != "" {
		query = query.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.UpcomingOnly {
		query = query.Where(squirrel.Expr("start_time > now()"))
	}
	if filter.From != nil {
		query = query.Where(squirrel.GtOrEq{"start_time": filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.Lt{"start_time": filter.To})
	}

	query = query.OrderBy("start_time ASC")

	// Pagination
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
		return nil, 0, fmt.Errorf("build list classes query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list classes failed: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	var total int

	for rows.Next() {
		var s Session
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Category, &s.Instructor, &s.StartTime, &s.DurationMinutes,
			&s.TotalSlots, &s.AvailableSlots, &s.CreatedAt, &s.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan class failed: %w", err)
		}
		sessions = append(sessions, &s)
	}

	return sessions, total, nil
}

// Update writes the operator-editable definition fields. It deliberately
// never touches total_slots or available_slots; those belong to the
// reservation engine's accounting.
func (r *pgxRepository) Update(ctx context.Context, s *Session) error {
	const query = `
		UPDATE public.classes
		SET name = $1, category = $2, instructor = $3, start_time = $4,
		    duration_minutes = $5, updated_at = now()
		WHERE id = $6
	`
	ct, err := r.pool.Exec(ctx, query,
		s.Name, s.Category, s.Instructor, s.StartTime, s.DurationMinutes, s.ID,
	)
	if err != nil {
		return fmt.Errorf("update class failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.classes WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete class failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
