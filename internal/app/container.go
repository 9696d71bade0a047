package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/venuebase/venue-booking-backend/internal/api"
	"github.com/venuebase/venue-booking-backend/internal/auth"
	"github.com/venuebase/venue-booking-backend/internal/booking"
	"github.com/venuebase/venue-booking-backend/internal/tenant"
	"github.com/venuebase/venue-booking-backend/internal/user"
	"github.com/venuebase/venue-booking-backend/internal/venue"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction     bool
	ProdOrigins      string
	DBPool           *pgxpool.Pool
	JWTSecret        string
	JWTRefreshSecret string
	JWTTTL           time.Duration
	JWTRefreshTTL    time.Duration
	BcryptCost       int
	Logger           zerolog.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.JWTTTL, cfg.JWTRefreshTTL)

	// Tenant module
	tenantRepo := tenant.NewPgxRepository(cfg.DBPool)
	tenantService := tenant.NewService(tenantRepo)

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Venue module
	venueRepo := venue.NewPgxRepository(cfg.DBPool)
	venueService := venue.NewService(venueRepo)

	// Booking module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, venueService)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		TenantService:  tenantService,
		UserService:    userService,
		VenueService:   venueService,
		BookingService: bookingService,
		JWTManager:     jwtManager,
		Logger:         cfg.Logger,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
