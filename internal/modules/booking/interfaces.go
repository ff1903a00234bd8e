package booking

import (
	"context"

	"bonzenga/internal/domain"
	"bonzenga/internal/modules/events"
)

type BookingRepository interface {
	CreateWithPayment(ctx context.Context, b *domain.Booking, p *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatusIf(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus, updates map[string]any) (bool, error)
	SetBookingPaymentStatus(ctx context.Context, bookingID int64, status domain.PaymentStatus) error
	ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Booking, error)
	ListByVendor(ctx context.Context, vendorID int64, status string, limit, offset int) ([]domain.Booking, error)
	ListByBeautician(ctx context.Context, beauticianID int64, limit, offset int) ([]domain.Booking, error)
	UpdatePaymentStatusByBookingIf(ctx context.Context, bookingID int64, from, to domain.PaymentStatus) (bool, error)
}

type VendorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vendor, error)
}

type ServiceRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Service, error)
}

type BeauticianRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Beautician, error)
}

// CommissionRecorder is implemented by the finance service. Recording is
// idempotent on booking ID, so retrying a completion is safe.
type CommissionRecorder interface {
	RecordBookingCommission(ctx context.Context, b *domain.Booking) error
}

type EventSink interface {
	Broadcast(ev events.Event)
}
