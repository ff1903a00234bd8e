package catalog

import (
	"context"
	"testing"

	"bonzenga/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Mock repositories
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) GetByID(ctx context.Context, id int64) (*domain.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}

func (m *MockVendorRepository) GetByIDWithServices(ctx context.Context, id int64) (*domain.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}

func (m *MockVendorRepository) ListApproved(ctx context.Context, city string, limit, offset int) ([]domain.Vendor, int, error) {
	args := m.Called(ctx, city, limit, offset)
	return args.Get(0).([]domain.Vendor), args.Int(1), args.Error(2)
}

func (m *MockVendorRepository) UpdateStatusIf(ctx context.Context, id int64, from []domain.VendorStatus, to domain.VendorStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockVendorRepository) UpdateProfile(ctx context.Context, v *domain.Vendor) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	args := m.Called(ctx, s)
	if s != nil {
		s.ID = 55 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func (m *MockServiceRepository) ListByVendor(ctx context.Context, vendorID int64, activeOnly bool) ([]domain.Service, error) {
	args := m.Called(ctx, vendorID, activeOnly)
	return args.Get(0).([]domain.Service), args.Error(1)
}

func (m *MockServiceRepository) Update(ctx context.Context, s *domain.Service) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockServiceRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestGetVendor_HidesNonApproved(t *testing.T) {
	vendors := new(MockVendorRepository)
	vendors.On("GetByIDWithServices", mock.Anything, int64(10)).Return(&domain.Vendor{ID: 10, Status: domain.VendorPending}, nil)

	service := NewService(vendors, new(MockServiceRepository))

	_, err := service.GetVendor(context.Background(), 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetVendor_ReturnsApprovedWithServices(t *testing.T) {
	vendors := new(MockVendorRepository)
	vendors.On("GetByIDWithServices", mock.Anything, int64(10)).Return(&domain.Vendor{
		ID:       10,
		ShopName: "Elegant Beauty Salon",
		Status:   domain.VendorApproved,
		Services: []domain.Service{{ID: 1, Name: "Haircut"}},
	}, nil)

	service := NewService(vendors, new(MockServiceRepository))

	v, err := service.GetVendor(context.Background(), 10)

	assert.NoError(t, err)
	assert.Len(t, v.Services, 1)
}

func TestCreateService_DefaultsToActive(t *testing.T) {
	vendors := new(MockVendorRepository)
	vendors.On("GetByID", mock.Anything, int64(10)).Return(&domain.Vendor{ID: 10, Status: domain.VendorApproved}, nil)

	services := new(MockServiceRepository)
	services.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(vendors, services)

	svc, err := service.CreateService(context.Background(), 10, ServiceRequest{Name: "Haircut", Price: 45, DurationMin: 60})

	assert.NoError(t, err)
	assert.True(t, svc.IsActive)
	assert.Equal(t, int64(10), svc.VendorID)
}

func TestUpdateService_ForeignVendorForbidden(t *testing.T) {
	services := new(MockServiceRepository)
	services.On("GetByID", mock.Anything, int64(55)).Return(&domain.Service{ID: 55, VendorID: 10}, nil)

	service := NewService(new(MockVendorRepository), services)

	_, err := service.UpdateService(context.Background(), 99, domain.RoleVendor, 55, ServiceRequest{Name: "Haircut", Price: 50})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateService_AdminMayEditAnyService(t *testing.T) {
	services := new(MockServiceRepository)
	services.On("GetByID", mock.Anything, int64(55)).Return(&domain.Service{ID: 55, VendorID: 10, Name: "Haircut"}, nil)
	services.On("Update", mock.Anything, mock.Anything).Return(nil)

	service := NewService(new(MockVendorRepository), services)

	svc, err := service.UpdateService(context.Background(), 1, domain.RoleAdmin, 55, ServiceRequest{Name: "Haircut Deluxe", Price: 60})

	assert.NoError(t, err)
	assert.Equal(t, "Haircut Deluxe", svc.Name)
}

func TestDeleteService_UnknownService(t *testing.T) {
	services := new(MockServiceRepository)
	services.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(new(MockVendorRepository), services)

	err := service.DeleteService(context.Background(), 10, domain.RoleVendor, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSuspendVendor_OnlyFromApproved(t *testing.T) {
	vendors := new(MockVendorRepository)
	vendors.On("GetByID", mock.Anything, int64(10)).Return(&domain.Vendor{ID: 10, Status: domain.VendorPending}, nil)
	vendors.On("UpdateStatusIf", mock.Anything, int64(10),
		[]domain.VendorStatus{domain.VendorApproved}, domain.VendorSuspended).Return(false, nil)

	service := NewService(vendors, new(MockServiceRepository))

	_, err := service.SuspendVendor(context.Background(), 10)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestReinstateVendor_Success(t *testing.T) {
	vendors := new(MockVendorRepository)
	vendors.On("GetByID", mock.Anything, int64(10)).Return(&domain.Vendor{ID: 10, Status: domain.VendorSuspended}, nil).Once()
	vendors.On("UpdateStatusIf", mock.Anything, int64(10),
		[]domain.VendorStatus{domain.VendorSuspended}, domain.VendorApproved).Return(true, nil)
	vendors.On("GetByID", mock.Anything, int64(10)).Return(&domain.Vendor{ID: 10, Status: domain.VendorApproved}, nil)

	service := NewService(vendors, new(MockServiceRepository))

	v, err := service.ReinstateVendor(context.Background(), 10)

	assert.NoError(t, err)
	assert.Equal(t, domain.VendorApproved, v.Status)
}
