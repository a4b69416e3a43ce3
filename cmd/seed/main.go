// Command seed fills the database with demo users, classes and bookings.
// It is destructive: existing rows are wiped first.
package main

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fitbook/fitness-booking-backend/internal/auth"
	"github.com/fitbook/fitness-booking-backend/internal/booking"
	"github.com/fitbook/fitness-booking-backend/internal/class"
	"github.com/fitbook/fitness-booking-backend/internal/config"
	"github.com/fitbook/fitness-booking-backend/internal/db"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer pool.Close()

	if err := run(ctx, pool, cfg.BcryptCost); err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	log.Println("seed data created successfully")
}

func run(ctx context.Context, pool *pgxpool.Pool, bcryptCost int) error {
	// Wipe existing data. Bookings go first because of foreign keys.
	for _, table := range []string{"public.bookings", "public.classes", "public.users"} {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	hasher := auth.NewBcryptPasswordHasherWithCost(bcryptCost)

	if _, err := createUser(ctx, pool, hasher, "admin@test.com", "admin123", true); err != nil {
		return err
	}
	user1ID, err := createUser(ctx, pool, hasher, "user1@test.com", "user1234", false)
	if err != nil {
		return err
	}
	user2ID, err := createUser(ctx, pool, hasher, "user2@test.com", "user1234", false)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	classRepo := class.NewPgxRepository(pool)

	yoga := &class.Session{
		Name: "Sunrise Yoga", Category: class.CategoryYoga, Instructor: "Alice",
		StartTime: now.AddDate(0, 0, 2), DurationMinutes: 60,
		TotalSlots: 10, AvailableSlots: 10,
	}
	zumba := &class.Session{
		Name: "Evening Zumba", Category: class.CategoryZumba, Instructor: "Bob",
		StartTime: now.AddDate(0, 0, 1), DurationMinutes: 45,
		TotalSlots: 15, AvailableSlots: 15,
	}
	hiit := &class.Session{
		Name: "HIIT Blast", Category: class.CategoryHIIT, Instructor: "Charlie",
		StartTime: now.AddDate(0, 0, -10), DurationMinutes: 30,
		TotalSlots: 20, AvailableSlots: 20,
	}
	stretch := &class.Session{
		Name: "Recent Stretch", Category: class.CategoryYoga, Instructor: "Dana",
		StartTime: now.AddDate(0, 0, -5), DurationMinutes: 50,
		TotalSlots: 10, AvailableSlots: 10,
	}
	for _, s := range []*class.Session{yoga, zumba, hiit, stretch} {
		if err := classRepo.Create(ctx, s); err != nil {
			return err
		}
	}

	// Upcoming classes get booked through the reservation engine so the
	// slot accounting is exercised end to end.
	engine := booking.NewService(booking.NewPgxRepository(pool))
	if _, err := engine.Create(ctx, user1ID, yoga.ID); err != nil {
		return err
	}
	if _, err := engine.Create(ctx, user1ID, zumba.ID); err != nil {
		return err
	}
	if _, err := engine.Create(ctx, user2ID, zumba.ID); err != nil {
		return err
	}

	// Historical rows are written directly: cancelled bookings hold no
	// slot, confirmed bookings on past classes keep their seat.
	if err := insertCancelled(ctx, pool, user2ID, yoga.ID); err != nil {
		return err
	}
	if err := insertCancelled(ctx, pool, user1ID, hiit.ID); err != nil {
		return err
	}
	if err := insertConfirmedPast(ctx, pool, user2ID, stretch.ID); err != nil {
		return err
	}

	return nil
}

func createUser(ctx context.Context, pool *pgxpool.Pool, hasher auth.PasswordHasher, email, password string, isAdmin bool) (string, error) {
	hash, err := hasher.Hash(password)
	if err != nil {
		return "", err
	}

	const query = `
		INSERT INTO public.users (email, password_hash, is_active, is_system_admin)
		VALUES ($1, $2, true, $3)
		RETURNING id
	`
	var id string
	if err := pool.QueryRow(ctx, query, email, hash, isAdmin).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func insertCancelled(ctx context.Context, pool *pgxpool.Pool, userID, classID string) error {
	const query = `
		INSERT INTO public.bookings (user_id, class_id, status, cancelled_at)
		VALUES ($1, $2, 'cancelled', now())
	`
	_, err := pool.Exec(ctx, query, userID, classID)
	return err
}

func insertConfirmedPast(ctx context.Context, pool *pgxpool.Pool, userID, classID string) error {
	const insert = `
		INSERT INTO public.bookings (user_id, class_id, status)
		VALUES ($1, $2, 'confirmed')
	`
	if _, err := pool.Exec(ctx, insert, userID, classID); err != nil {
		return err
	}

	const adjust = `
		UPDATE public.classes
		SET available_slots = available_slots - 1
		WHERE id = $1 AND available_slots > 0
	`
	_, err := pool.Exec(ctx, adjust, classID)
	return err
}
