package booking

import (
	"context"
	"testing"
	"time"

	"bonzenga/internal/domain"
	"bonzenga/internal/modules/events"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Mock repositories
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreateWithPayment(ctx context.Context, b *domain.Booking, p *domain.Payment) error {
	args := m.Called(ctx, b, p)
	if b != nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatusIf(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus, updates map[string]any) (bool, error) {
	args := m.Called(ctx, id, from, to, updates)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) SetBookingPaymentStatus(ctx context.Context, bookingID int64, status domain.PaymentStatus) error {
	args := m.Called(ctx, bookingID, status)
	return args.Error(0)
}

func (m *MockBookingRepository) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, customerID, limit, offset)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByVendor(ctx context.Context, vendorID int64, status string, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, vendorID, status, limit, offset)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByBeautician(ctx context.Context, beauticianID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, beauticianID, limit, offset)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdatePaymentStatusByBookingIf(ctx context.Context, bookingID int64, from, to domain.PaymentStatus) (bool, error) {
	args := m.Called(ctx, bookingID, from, to)
	return args.Bool(0), args.Error(1)
}

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

type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Service, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Service), args.Error(1)
}

type MockBeauticianRepository struct {
	mock.Mock
}

func (m *MockBeauticianRepository) GetByID(ctx context.Context, id int64) (*domain.Beautician, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Beautician), args.Error(1)
}

type MockCommissionRecorder struct {
	mock.Mock
}

func (m *MockCommissionRecorder) RecordBookingCommission(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

type MockEventSink struct {
	mock.Mock
}

func (m *MockEventSink) Broadcast(ev events.Event) {
	m.Called(ev)
}

type fixture struct {
	bookings    *MockBookingRepository
	vendors     *MockVendorRepository
	services    *MockServiceRepository
	beauticians *MockBeauticianRepository
	finance     *MockCommissionRecorder
	service     *Service
}

func newFixture() *fixture {
	f := &fixture{
		bookings:    new(MockBookingRepository),
		vendors:     new(MockVendorRepository),
		services:    new(MockServiceRepository),
		beauticians: new(MockBeauticianRepository),
		finance:     new(MockCommissionRecorder),
	}
	sink := new(MockEventSink)
	sink.On("Broadcast", mock.Anything).Maybe()
	f.service = NewService(f.bookings, f.vendors, f.services, f.beauticians, f.finance, sink, zerolog.Nop())
	return f
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format("2006-01-02")
}

func TestCreate_SnapshotsPricesAndTotals(t *testing.T) {
	f := newFixture()

	f.vendors.On("GetByID", mock.Anything, int64(10)).Return(&domain.Vendor{ID: 10, Status: domain.VendorApproved}, nil)
	f.services.On("GetByIDs", mock.Anything, []int64{1, 2}).Return([]domain.Service{
		{ID: 1, VendorID: 10, Name: "Haircut", Price: 45, IsActive: true},
		{ID: 2, VendorID: 10, Name: "Manicure", Price: 20.50, IsActive: true},
	}, nil)
	f.bookings.On("CreateWithPayment", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	b, err := f.service.Create(context.Background(), 3, CreateRequest{
		VendorID:      10,
		ScheduledDate: futureDate(),
		ScheduledTime: "14:00",
		Items: []ItemRequest{
			{ServiceID: 1, Quantity: 1},
			{ServiceID: 2, Quantity: 2},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 86.0, b.Total)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, domain.PaymentPending, b.PaymentStatus)
	assert.Equal(t, "Haircut", b.Items[0].Name)
	assert.Equal(t, 45.0, b.Items[0].Price)
	assert.NotEmpty(t, b.Payment.Reference)
	assert.Equal(t, 86.0, b.Payment.Amount)
}

func TestCreate_UnapprovedVendorHidden(t *testing.T) {
	f := newFixture()
	f.vendors.On("GetByID", mock.Anything, int64(10)).Return(&domain.Vendor{ID: 10, Status: domain.VendorPending}, nil)

	_, err := f.service.Create(context.Background(), 3, CreateRequest{
		VendorID:      10,
		ScheduledDate: futureDate(),
		ScheduledTime: "14:00",
		Items:         []ItemRequest{{ServiceID: 1, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreate_EmptySelectionRefused(t *testing.T) {
	f := newFixture()
	f.vendors.On("GetByID", mock.Anything, int64(10)).Return(&domain.Vendor{ID: 10, Status: domain.VendorApproved}, nil)

	_, err := f.service.Create(context.Background(), 3, CreateRequest{
		VendorID:      10,
		ScheduledDate: futureDate(),
		ScheduledTime: "14:00",
		Items:         []ItemRequest{},
	})
	assert.ErrorIs(t, err, ErrValidation)
	f.services.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
}

func TestCreate_InactiveServiceRefused(t *testing.T) {
	f := newFixture()
	f.vendors.On("GetByID", mock.Anything, int64(10)).Return(&domain.Vendor{ID: 10, Status: domain.VendorApproved}, nil)
	f.services.On("GetByIDs", mock.Anything, []int64{1}).Return([]domain.Service{
		{ID: 1, VendorID: 10, Name: "Haircut", Price: 45, IsActive: false},
	}, nil)

	_, err := f.service.Create(context.Background(), 3, CreateRequest{
		VendorID:      10,
		ScheduledDate: futureDate(),
		ScheduledTime: "14:00",
		Items:         []ItemRequest{{ServiceID: 1, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreate_ForeignServiceRefused(t *testing.T) {
	f := newFixture()
	f.vendors.On("GetByID", mock.Anything, int64(10)).Return(&domain.Vendor{ID: 10, Status: domain.VendorApproved}, nil)
	f.services.On("GetByIDs", mock.Anything, []int64{1}).Return([]domain.Service{
		{ID: 1, VendorID: 99, Name: "Haircut", Price: 45, IsActive: true},
	}, nil)

	_, err := f.service.Create(context.Background(), 3, CreateRequest{
		VendorID:      10,
		ScheduledDate: futureDate(),
		ScheduledTime: "14:00",
		Items:         []ItemRequest{{ServiceID: 1, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreate_PastDateRefused(t *testing.T) {
	f := newFixture()
	f.vendors.On("GetByID", mock.Anything, int64(10)).Return(&domain.Vendor{ID: 10, Status: domain.VendorApproved}, nil)

	_, err := f.service.Create(context.Background(), 3, CreateRequest{
		VendorID:      10,
		ScheduledDate: "2020-01-01",
		ScheduledTime: "14:00",
		Items:         []ItemRequest{{ServiceID: 1, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAssignBeautician_ConfirmsPendingBooking(t *testing.T) {
	f := newFixture()

	pending := &domain.Booking{ID: 999, VendorID: 10, Status: domain.BookingPending}
	f.bookings.On("GetByID", mock.Anything, int64(999)).Return(pending, nil).Once()
	f.beauticians.On("GetByID", mock.Anything, int64(7)).Return(&domain.Beautician{ID: 7, Status: domain.BeauticianApproved}, nil)
	f.bookings.On("UpdateStatusIf", mock.Anything, int64(999),
		[]domain.BookingStatus{domain.BookingPending}, domain.BookingConfirmed,
		map[string]any{"beautician_id": int64(7)}).Return(true, nil)
	f.bookings.On("GetByID", mock.Anything, int64(999)).Return(&domain.Booking{ID: 999, Status: domain.BookingConfirmed}, nil)

	b, err := f.service.AssignBeautician(context.Background(), 10, domain.RoleVendor, 999, 7)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
}

func TestAssignBeautician_UnapprovedBeauticianRefused(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(999)).Return(&domain.Booking{ID: 999, VendorID: 10, Status: domain.BookingPending}, nil)
	f.beauticians.On("GetByID", mock.Anything, int64(7)).Return(&domain.Beautician{ID: 7, Status: domain.BeauticianPending}, nil)

	_, err := f.service.AssignBeautician(context.Background(), 10, domain.RoleVendor, 999, 7)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAssignBeautician_OtherVendorForbidden(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetByID", mock.Anything, int64(999)).Return(&domain.Booking{ID: 999, VendorID: 10, Status: domain.BookingPending}, nil)

	_, err := f.service.AssignBeautician(context.Background(), 55, domain.RoleVendor, 999, 7)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestTransition_CompletionRecordsCommission(t *testing.T) {
	f := newFixture()

	inProgress := &domain.Booking{ID: 999, VendorID: 10, Status: domain.BookingInProgress, Total: 45}
	f.bookings.On("GetByID", mock.Anything, int64(999)).Return(inProgress, nil).Once()
	f.bookings.On("UpdateStatusIf", mock.Anything, int64(999),
		[]domain.BookingStatus{domain.BookingConfirmed, domain.BookingInProgress}, domain.BookingCompleted,
		mock.Anything).Return(true, nil)
	f.finance.On("RecordBookingCommission", mock.Anything, inProgress).Return(nil)
	f.bookings.On("GetByID", mock.Anything, int64(999)).Return(&domain.Booking{ID: 999, Status: domain.BookingCompleted}, nil)

	b, err := f.service.Transition(context.Background(), 10, domain.RoleVendor, 999, domain.BookingCompleted)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, b.Status)
	f.finance.AssertExpectations(t)
}

func TestTransition_ConfirmedBookingCompletesDirectly(t *testing.T) {
	f := newFixture()

	confirmed := &domain.Booking{ID: 999, VendorID: 10, Status: domain.BookingConfirmed, Total: 45}
	f.bookings.On("GetByID", mock.Anything, int64(999)).Return(confirmed, nil).Once()
	f.bookings.On("UpdateStatusIf", mock.Anything, int64(999),
		[]domain.BookingStatus{domain.BookingConfirmed, domain.BookingInProgress}, domain.BookingCompleted,
		mock.Anything).Return(true, nil)
	f.finance.On("RecordBookingCommission", mock.Anything, confirmed).Return(nil)
	f.bookings.On("GetByID", mock.Anything, int64(999)).Return(&domain.Booking{ID: 999, Status: domain.BookingCompleted}, nil)

	b, err := f.service.Transition(context.Background(), 10, domain.RoleVendor, 999, domain.BookingCompleted)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, b.Status)
}

func TestTransition_CommissionFailureDoesNotUndoCompletion(t *testing.T) {
	f := newFixture()

	inProgress := &domain.Booking{ID: 999, VendorID: 10, Status: domain.BookingInProgress, Total: 45}
	f.bookings.On("GetByID", mock.Anything, int64(999)).Return(inProgress, nil).Once()
	f.bookings.On("UpdateStatusIf", mock.Anything, int64(999),
		[]domain.BookingStatus{domain.BookingConfirmed, domain.BookingInProgress}, domain.BookingCompleted,
		mock.Anything).Return(true, nil)
	f.finance.On("RecordBookingCommission", mock.Anything, inProgress).Return(assert.AnError)
	f.bookings.On("GetByID", mock.Anything, int64(999)).Return(&domain.Booking{ID: 999, Status: domain.BookingCompleted}, nil)

	b, err := f.service.Transition(context.Background(), 10, domain.RoleVendor, 999, domain.BookingCompleted)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, b.Status)
}

func TestTransition_RepeatLosesCompareAndSet(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(999)).Return(&domain.Booking{ID: 999, VendorID: 10, Status: domain.BookingInProgress}, nil)
	f.bookings.On("UpdateStatusIf", mock.Anything, int64(999),
		[]domain.BookingStatus{domain.BookingConfirmed, domain.BookingInProgress}, domain.BookingCompleted,
		mock.Anything).Return(false, nil)

	_, err := f.service.Transition(context.Background(), 10, domain.RoleVendor, 999, domain.BookingCompleted)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestTransition_CustomerCannotComplete(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetByID", mock.Anything, int64(999)).Return(&domain.Booking{ID: 999, CustomerID: 3, VendorID: 10, Status: domain.BookingInProgress}, nil)

	_, err := f.service.Transition(context.Background(), 3, domain.RoleCustomer, 999, domain.BookingCompleted)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestTransition_CustomerCancelsOwnBooking(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(999)).Return(&domain.Booking{ID: 999, CustomerID: 3, VendorID: 10, Status: domain.BookingConfirmed}, nil).Once()
	f.bookings.On("UpdateStatusIf", mock.Anything, int64(999), mock.Anything, domain.BookingCancelled, mock.Anything).Return(true, nil)
	f.bookings.On("GetByID", mock.Anything, int64(999)).Return(&domain.Booking{ID: 999, Status: domain.BookingCancelled}, nil)

	b, err := f.service.Transition(context.Background(), 3, domain.RoleCustomer, 999, domain.BookingCancelled)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
}

func TestTransition_CancelCompletedBookingFails(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(999)).Return(&domain.Booking{ID: 999, CustomerID: 3, VendorID: 10, Status: domain.BookingCompleted}, nil)
	f.bookings.On("UpdateStatusIf", mock.Anything, int64(999), mock.Anything, domain.BookingCancelled, mock.Anything).Return(false, nil)

	_, err := f.service.Transition(context.Background(), 3, domain.RoleCustomer, 999, domain.BookingCancelled)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestTransition_UnknownBooking(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := f.service.Transition(context.Background(), 10, domain.RoleVendor, 404, domain.BookingCompleted)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConfirmPayment_FlipsPendingPayment(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(999)).Return(&domain.Booking{ID: 999, CustomerID: 3, PaymentStatus: domain.PaymentPending}, nil).Once()
	f.bookings.On("UpdatePaymentStatusByBookingIf", mock.Anything, int64(999), domain.PaymentPending, domain.PaymentPaid).Return(true, nil)
	f.bookings.On("SetBookingPaymentStatus", mock.Anything, int64(999), domain.PaymentPaid).Return(nil)
	f.bookings.On("GetByID", mock.Anything, int64(999)).Return(&domain.Booking{ID: 999, PaymentStatus: domain.PaymentPaid}, nil)

	b, err := f.service.ConfirmPayment(context.Background(), 3, 999)

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, b.PaymentStatus)
}

func TestFailPayment_LeavesBookingPaymentStatePending(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(999)).Return(&domain.Booking{ID: 999, CustomerID: 3, PaymentStatus: domain.PaymentPending}, nil)
	f.bookings.On("UpdatePaymentStatusByBookingIf", mock.Anything, int64(999), domain.PaymentPending, domain.PaymentFailed).Return(true, nil)

	b, err := f.service.FailPayment(context.Background(), 3, 999)

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, b.PaymentStatus)
	f.bookings.AssertNotCalled(t, "SetBookingPaymentStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmPayment_ReplayLosesCompareAndSet(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(999)).Return(&domain.Booking{ID: 999, CustomerID: 3, PaymentStatus: domain.PaymentPaid}, nil)
	f.bookings.On("UpdatePaymentStatusByBookingIf", mock.Anything, int64(999), domain.PaymentPending, domain.PaymentPaid).Return(false, nil)

	_, err := f.service.ConfirmPayment(context.Background(), 3, 999)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestConfirmPayment_OnlyOwnBooking(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetByID", mock.Anything, int64(999)).Return(&domain.Booking{ID: 999, CustomerID: 3}, nil)

	_, err := f.service.ConfirmPayment(context.Background(), 55, 999)
	assert.ErrorIs(t, err, ErrForbidden)
}
