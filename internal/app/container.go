package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fitbook/fitness-booking-backend/internal/api"
	"github.com/fitbook/fitness-booking-backend/internal/auth"
	"github.com/fitbook/fitness-booking-backend/internal/booking"
	"github.com/fitbook/fitness-booking-backend/internal/class"
	"github.com/fitbook/fitness-booking-backend/internal/stats"
	"github.com/fitbook/fitness-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction    bool
	ProdOrigins     string
	DefaultTimezone string
	DBPool          *pgxpool.Pool
	JWTSecret       string
	JWTTTL          time.Duration
	BcryptCost      int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager

	UserService    user.Service
	ClassService   class.Service
	BookingService booking.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Class Catalog Module
	classRepo := class.NewPgxRepository(cfg.DBPool)
	classService := class.NewService(classRepo)

	// Booking Module (reservation engine)
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo)

	// Stats Module
	statsRepo := stats.NewPgxRepository(cfg.DBPool)
	statsService := stats.NewService(statsRepo)

	// API Router Config
	routerParams := api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		DefaultTimezone: cfg.DefaultTimezone,
		UserService:     userService,
		ClassService:    classService,
		BookingService:  bookingService,
		StatsService:    statsService,
		JWTManager:      jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:         router,
		JWTManager:     jwtManager,
		UserService:    userService,
		ClassService:   classService,
		BookingService: bookingService,
	}
}
