package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"bonzenga/internal/database"
	"bonzenga/internal/domain"
	"bonzenga/internal/middleware"
	"bonzenga/internal/modules/admin"
	"bonzenga/internal/modules/auth"
	"bonzenga/internal/modules/booking"
	"bonzenga/internal/modules/catalog"
	"bonzenga/internal/modules/events"
	"bonzenga/internal/modules/finance"
	"bonzenga/internal/modules/review"
	jwtsvc "bonzenga/internal/pkg/jwt"
	"bonzenga/internal/repository"
)

func main() {
	_ = godotenv.Load()

	logger := newLogger()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal().Msg("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Fatal().Msg("JWT_SECRET is empty")
	}
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}

	userRepo := repository.NewUserRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	beauticianRepo := repository.NewBeauticianRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	financeRepo := repository.NewFinanceRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)

	hub := events.NewHub()
	defer hub.Close()
	eventsHandler := events.NewHandler(hub, logger)

	authService := auth.NewService(userRepo, vendorRepo, beauticianRepo, appRepo, j, hub)
	authHandler := auth.NewHandler(authService)

	reviewService := review.NewService(appRepo, vendorRepo, beauticianRepo, hub)
	reviewHandler := review.NewHandler(reviewService)

	catalogService := catalog.NewService(vendorRepo, serviceRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	financeService := finance.NewService(financeRepo, bookingRepo, hub, logger)
	financeHandler := finance.NewHandler(financeService)

	bookingService := booking.NewService(bookingRepo, vendorRepo, serviceRepo, beauticianRepo, financeService, hub, logger)
	bookingHandler := booking.NewHandler(bookingService)

	adminService := admin.NewService(userRepo, db)
	adminHandler := admin.NewHandler(adminService)

	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(logger))

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1.Group("/", middleware.RateLimit(5, 10)))
		catalogHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j, userRepo))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterSharedRoutes(protected)
			reviewHandler.RegisterApplicantRoutes(protected)

			customers := protected.Group("/", middleware.RequireRoles(domain.RoleCustomer))
			bookingHandler.RegisterCustomerRoutes(customers)
			financeHandler.RegisterCustomerRoutes(customers)

			vendors := protected.Group("/", middleware.RequireRoles(domain.RoleVendor))
			catalogHandler.RegisterVendorRoutes(vendors)
			bookingHandler.RegisterVendorRoutes(vendors)
			financeHandler.RegisterVendorRoutes(vendors)

			beauticians := protected.Group("/", middleware.RequireRoles(domain.RoleBeautician))
			bookingHandler.RegisterBeauticianRoutes(beauticians)

			staff := protected.Group("/", middleware.RequireRoles(domain.RoleManager, domain.RoleAdmin))
			reviewHandler.RegisterReviewerRoutes(staff)
			catalogHandler.RegisterModerationRoutes(staff)
			bookingHandler.RegisterStaffRoutes(staff)
			financeHandler.RegisterStaffRoutes(staff)
			eventsHandler.RegisterRoutes(staff)

			admins := protected.Group("/", middleware.RequireRoles(domain.RoleAdmin))
			financeHandler.RegisterAdminRoutes(admins)
			adminHandler.RegisterRoutes(admins)
		}
	}

	logger.Info().Str("addr", addr).Msg("starting server")
	if err := r.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func newLogger() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("APP_ENV") == "production" {
		return zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
