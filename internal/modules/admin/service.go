package admin

import (
	"context"
	"errors"

	"bonzenga/internal/domain"
	"bonzenga/internal/repository"

	"gorm.io/gorm"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AccountStatus) error
	List(ctx context.Context, filter repository.UserFilter, limit, offset int) ([]domain.User, int, error)
}

type Service struct {
	users UserRepository
	db    *gorm.DB
}

func NewService(users UserRepository, db *gorm.DB) *Service {
	return &Service{users: users, db: db}
}

func (s *Service) ListUsers(ctx context.Context, filter repository.UserFilter, limit, offset int) ([]domain.User, int, error) {
	return s.users.List(ctx, filter, limit, offset)
}

// SetAccountStatus suspends or reactivates an account. Admin accounts
// cannot be suspended through this path, and an admin cannot lock
// themselves out.
func (s *Service) SetAccountStatus(ctx context.Context, actorID, targetID int64, status domain.AccountStatus) (*domain.User, error) {
	if status != domain.AccountActive && status != domain.AccountSuspended {
		return nil, ErrValidation
	}
	if actorID == targetID {
		return nil, ErrForbidden
	}

	u, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if u.Role == domain.RoleAdmin {
		return nil, ErrForbidden
	}

	if err := s.users.UpdateStatus(ctx, targetID, status); err != nil {
		return nil, err
	}

	u.Status = status
	u.PasswordHash = ""
	return u, nil
}

// Statistics aggregates platform-wide counts and revenue straight from
// the database.
func (s *Service) Statistics(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{}
	db := s.db.WithContext(ctx)

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.TotalUsers, db.Table("users")},
		{&stats.TotalCustomers, db.Table("users").Where("role = ?", string(domain.RoleCustomer))},
		{&stats.TotalVendors, db.Model(&domain.Vendor{})},
		{&stats.ApprovedVendors, db.Model(&domain.Vendor{}).Where("status = ?", string(domain.VendorApproved))},
		{&stats.TotalBeauticians, db.Model(&domain.Beautician{})},
		{&stats.TotalBookings, db.Model(&domain.Booking{})},
		{&stats.CompletedBookings, db.Model(&domain.Booking{}).Where("status = ?", string(domain.BookingCompleted))},
		{&stats.OpenDisputes, db.Model(&domain.Dispute{}).Where("status IN ?", []string{string(domain.DisputeOpen), string(domain.DisputeInvestigating)})},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	type revenueRow struct {
		Gross    float64
		Platform float64
	}
	var rev revenueRow
	if err := db.Model(&domain.Earning{}).
		Select("COALESCE(SUM(gross), 0) AS gross, COALESCE(SUM(platform_share), 0) AS platform").
		Scan(&rev).Error; err != nil {
		return nil, err
	}
	stats.GrossRevenue = rev.Gross
	stats.PlatformRevenue = rev.Platform

	return stats, nil
}
