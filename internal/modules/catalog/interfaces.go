package catalog

import (
	"context"

	"bonzenga/internal/domain"
)

type VendorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vendor, error)
	GetByIDWithServices(ctx context.Context, id int64) (*domain.Vendor, error)
	ListApproved(ctx context.Context, city string, limit, offset int) ([]domain.Vendor, int, error)
	UpdateStatusIf(ctx context.Context, id int64, from []domain.VendorStatus, to domain.VendorStatus) (bool, error)
	UpdateProfile(ctx context.Context, v *domain.Vendor) error
}

type ServiceRepository interface {
	Create(ctx context.Context, s *domain.Service) error
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	ListByVendor(ctx context.Context, vendorID int64, activeOnly bool) ([]domain.Service, error)
	Update(ctx context.Context, s *domain.Service) error
	Delete(ctx context.Context, id int64) error
}
