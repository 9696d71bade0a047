package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/venuebase/venue-booking-backend/internal/auth"
	"github.com/venuebase/venue-booking-backend/internal/booking"
	bookingHttp "github.com/venuebase/venue-booking-backend/internal/booking/http"
	"github.com/venuebase/venue-booking-backend/internal/metrics"
	"github.com/venuebase/venue-booking-backend/internal/tenant"
	tenantHttp "github.com/venuebase/venue-booking-backend/internal/tenant/http"
	"github.com/venuebase/venue-booking-backend/internal/user"
	userHttp "github.com/venuebase/venue-booking-backend/internal/user/http"
	"github.com/venuebase/venue-booking-backend/internal/venue"
	venueHttp "github.com/venuebase/venue-booking-backend/internal/venue/http"
)

// Config holds the dependencies and settings required to assemble the router.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	TenantService  tenant.Service
	UserService    user.Service
	VenueService   venue.Service
	BookingService booking.Service
	JWTManager     *auth.JWTManager
	Logger         zerolog.Logger
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, logging, metrics, auth)
// and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(RequestLogger(cfg.Logger), gin.Recovery(), metrics.Middleware())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	// authMiddleware: Validates that the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// managerMiddleware: Further checks that the authenticated user can manage venues.
	managerMiddleware := RequireRole(user.RoleOwner, user.RoleManager)

	// Initialize HTTP handlers for each module (injecting Service dependencies).
	tenantHandler := tenantHttp.NewHandler(cfg.TenantService)
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	venueHandler := venueHttp.NewHandler(cfg.VenueService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		tenantHttp.RegisterRoutes(v1, tenantHandler, authMiddleware)
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		venueHttp.RegisterRoutes(v1, venueHandler, authMiddleware, managerMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
	}

	return r
}

func splitOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
