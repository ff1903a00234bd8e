package repository

import (
	"bonzenga/internal/domain"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the full schema. The users table is
// mapped through the repository's own row model so its constraints
// (unique email, nullable phone) land in the schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&domain.Application{},
		&domain.Vendor{},
		&domain.Beautician{},
		&domain.Service{},
		&domain.Booking{},
		&domain.BookingItem{},
		&domain.Payment{},
		&domain.Commission{},
		&domain.Earning{},
		&domain.Payout{},
		&domain.Refund{},
		&domain.Dispute{},
	)
}
