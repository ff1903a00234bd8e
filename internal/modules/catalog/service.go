package catalog

import (
	"context"
	"errors"

	"bonzenga/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	vendors  VendorRepository
	services ServiceRepository
}

func NewService(vendors VendorRepository, services ServiceRepository) *Service {
	return &Service{vendors: vendors, services: services}
}

// -------------------- Public browsing --------------------

func (s *Service) ListVendors(ctx context.Context, city string, limit, offset int) ([]domain.Vendor, int, error) {
	return s.vendors.ListApproved(ctx, city, limit, offset)
}

// GetVendor exposes only marketplace-visible (APPROVED) vendors.
func (s *Service) GetVendor(ctx context.Context, id int64) (*domain.Vendor, error) {
	v, err := s.vendors.GetByIDWithServices(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if v.Status != domain.VendorApproved {
		return nil, ErrNotFound
	}
	return v, nil
}

// -------------------- Vendor self-management --------------------

func (s *Service) UpdateVendorProfile(ctx context.Context, vendorID int64, req VendorProfileRequest) (*domain.Vendor, error) {
	v, err := s.vendors.GetByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	v.ShopName = req.ShopName
	v.Description = req.Description
	v.Address = req.Address
	v.City = req.City
	if err := s.vendors.UpdateProfile(ctx, v); err != nil {
		return nil, err
	}
	return s.vendors.GetByID(ctx, vendorID)
}

func (s *Service) CreateService(ctx context.Context, vendorID int64, req ServiceRequest) (*domain.Service, error) {
	if _, err := s.vendors.GetByID(ctx, vendorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	svc := &domain.Service{
		VendorID:    vendorID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		DurationMin: req.DurationMin,
		IsActive:    active,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// UpdateService mutates a service; prices on existing bookings are
// snapshotted at creation time and stay untouched.
func (s *Service) UpdateService(ctx context.Context, actorID int64, actorRole domain.UserRole, serviceID int64, req ServiceRequest) (*domain.Service, error) {
	svc, err := s.getOwned(ctx, actorID, actorRole, serviceID)
	if err != nil {
		return nil, err
	}

	svc.Name = req.Name
	svc.Description = req.Description
	svc.Price = req.Price
	svc.DurationMin = req.DurationMin
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := s.services.Update(ctx, svc); err != nil {
		return nil, err
	}
	return s.services.GetByID(ctx, serviceID)
}

func (s *Service) DeleteService(ctx context.Context, actorID int64, actorRole domain.UserRole, serviceID int64) error {
	if _, err := s.getOwned(ctx, actorID, actorRole, serviceID); err != nil {
		return err
	}
	return s.services.Delete(ctx, serviceID)
}

func (s *Service) ListVendorServices(ctx context.Context, vendorID int64, activeOnly bool) ([]domain.Service, error) {
	return s.services.ListByVendor(ctx, vendorID, activeOnly)
}

func (s *Service) getOwned(ctx context.Context, actorID int64, actorRole domain.UserRole, serviceID int64) (*domain.Service, error) {
	svc, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if actorRole != domain.RoleAdmin && svc.VendorID != actorID {
		return nil, ErrForbidden
	}
	return svc, nil
}

// -------------------- Moderation --------------------

// SuspendVendor takes an activated vendor off the marketplace.
func (s *Service) SuspendVendor(ctx context.Context, vendorID int64) (*domain.Vendor, error) {
	return s.moderate(ctx, vendorID, []domain.VendorStatus{domain.VendorApproved}, domain.VendorSuspended)
}

func (s *Service) ReinstateVendor(ctx context.Context, vendorID int64) (*domain.Vendor, error) {
	return s.moderate(ctx, vendorID, []domain.VendorStatus{domain.VendorSuspended}, domain.VendorApproved)
}

func (s *Service) moderate(ctx context.Context, vendorID int64, from []domain.VendorStatus, to domain.VendorStatus) (*domain.Vendor, error) {
	if _, err := s.vendors.GetByID(ctx, vendorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	ok, err := s.vendors.UpdateStatusIf(ctx, vendorID, from, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidState
	}
	return s.vendors.GetByID(ctx, vendorID)
}
