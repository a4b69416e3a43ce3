package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/fitbook/fitness-booking-backend/internal/auth"
	"github.com/fitbook/fitness-booking-backend/internal/booking"
	bookingHttp "github.com/fitbook/fitness-booking-backend/internal/booking/http"
	"github.com/fitbook/fitness-booking-backend/internal/class"
	classHttp "github.com/fitbook/fitness-booking-backend/internal/class/http"
	"github.com/fitbook/fitness-booking-backend/internal/pkg/request"
	"github.com/fitbook/fitness-booking-backend/internal/stats"
	statsHttp "github.com/fitbook/fitness-booking-backend/internal/stats/http"
	"github.com/fitbook/fitness-booking-backend/internal/user"
	userHttp "github.com/fitbook/fitness-booking-backend/internal/user/http"
)

// Config holds everything the router needs to assemble the HTTP surface.
type Config struct {
	IsProduction    bool
	ProdOrigins     string
	DefaultTimezone string

	UserService    user.Service
	ClassService   class.Service
	BookingService booking.Service
	StatsService   stats.Service

	JWTManager *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Timezone"}
	r.Use(cors.New(corsConfig))

	// Resolve the client timezone for date-based filters.
	r.Use(request.TimezoneMiddleware(cfg.DefaultTimezone))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// sysAdminMiddleware: Further checks if the authenticated user has System Admin privileges.
	sysAdminMiddleware := RequireSystemAdmin(cfg.UserService)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	classHandler := classHttp.NewHandler(cfg.ClassService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.UserService)
	statsHandler := statsHttp.NewHandler(cfg.StatsService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		classHttp.RegisterRoutes(v1, classHandler, authMiddleware, sysAdminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		statsHttp.RegisterRoutes(v1, statsHandler, authMiddleware, sysAdminMiddleware)
	}

	return r
}

func splitOrigins(origins string) []string {
	var result []string
	for _, o := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
