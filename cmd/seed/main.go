package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"bonzenga/internal/database"
	"bonzenga/internal/domain"
	"bonzenga/internal/repository"
)

// Seeds the baseline data a fresh install needs: the platform admin and
// manager accounts, a 15% global commission rule, and a demo vendor
// with one bookable service.
func main() {
	_ = godotenv.Load()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "bonzenga.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}

	logger.Info().Msg("running migrations")
	if err := repository.AutoMigrate(db); err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)

	admin := seedUser(ctx, logger, users, "admin@bonzenga.cd", "admin123", "Platform", "Admin", domain.RoleAdmin)
	seedUser(ctx, logger, users, "manager@bonzenga.cd", "manager123", "Platform", "Manager", domain.RoleManager)
	seedUser(ctx, logger, users, "customer@bonzenga.cd", "customer123", "Grace", "Mbala", domain.RoleCustomer)
	vendorAcc := seedUser(ctx, logger, users, "vendor@bonzenga.cd", "vendor123", "Nadine", "Kusa", domain.RoleVendor)
	beauticianAcc := seedUser(ctx, logger, users, "beautician@bonzenga.cd", "beautician123", "Sarah", "Ilunga", domain.RoleBeautician)

	if vendorAcc != nil {
		vendor := domain.Vendor{
			ID:          vendorAcc.ID,
			ShopName:    "Elegant Beauty Salon",
			Description: "Full-service salon in the city centre",
			Address:     "12 Avenue de la Paix",
			City:        "Kinshasa",
			Status:      domain.VendorApproved,
		}
		if err := db.Create(&vendor).Error; err != nil {
			logger.Fatal().Err(err).Msg("vendor seed failed")
		}

		haircut := domain.Service{
			VendorID:    vendor.ID,
			Name:        "Haircut",
			Description: "Wash, cut and style",
			Price:       45,
			DurationMin: 60,
			IsActive:    true,
		}
		if err := db.Create(&haircut).Error; err != nil {
			logger.Fatal().Err(err).Msg("service seed failed")
		}
		logger.Info().Str("shop", vendor.ShopName).Msg("vendor seeded")
	}

	if beauticianAcc != nil {
		beautician := domain.Beautician{
			ID:            beauticianAcc.ID,
			Skills:        `["haircut","braiding"]`,
			ExperienceYrs: 5,
			Bio:           "Senior stylist",
			Status:        domain.BeauticianApproved,
		}
		if err := db.Create(&beautician).Error; err != nil {
			logger.Fatal().Err(err).Msg("beautician seed failed")
		}
	}

	rule := domain.Commission{
		Scope:      domain.CommissionGlobal,
		Percentage: 15,
		IsActive:   true,
	}
	if err := db.Create(&rule).Error; err != nil {
		logger.Fatal().Err(err).Msg("commission seed failed")
	}

	if admin != nil {
		logger.Info().Str("email", admin.Email).Msg("admin ready")
	}
	logger.Info().Msg("seed complete")
}

func seedUser(ctx context.Context, logger zerolog.Logger, users *repository.UserRepository, email, password, first, last string, role domain.UserRole) *domain.User {
	if existing, err := users.GetByEmail(ctx, email); err == nil {
		logger.Info().Str("email", email).Msg("account already exists, skipping")
		return existing
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal().Err(err).Msg("hash failed")
	}

	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    first,
		LastName:     last,
		Role:         role,
		Status:       domain.AccountActive,
	}
	if err := users.Create(ctx, u); err != nil {
		logger.Fatal().Err(err).Str("email", email).Msg("user seed failed")
	}
	logger.Info().Str("email", email).Str("role", string(role)).Msg("account seeded")
	return u
}
