package finance

import (
	"context"

	"bonzenga/internal/domain"
	"bonzenga/internal/modules/events"
)

type FinanceRepository interface {
	ActiveGlobalRule(ctx context.Context) (*domain.Commission, error)
	ActiveVendorRule(ctx context.Context, vendorID int64) (*domain.Commission, error)
	UpsertRule(ctx context.Context, c *domain.Commission) error
	ListRules(ctx context.Context) ([]domain.Commission, error)

	CreateEarning(ctx context.Context, e *domain.Earning) error
	GetEarningByBooking(ctx context.Context, bookingID int64) (*domain.Earning, error)

	CreatePayout(ctx context.Context, p *domain.Payout) error
	GetPayout(ctx context.Context, id int64) (*domain.Payout, error)
	UpdatePayoutStatusIf(ctx context.Context, id int64, from, to domain.PayoutStatus, decidedBy *int64) (bool, error)
	ListPayouts(ctx context.Context, vendorID int64, status string, limit, offset int) ([]domain.Payout, error)

	CreateRefund(ctx context.Context, rf *domain.Refund) error
	GetRefund(ctx context.Context, id int64) (*domain.Refund, error)
	UpdateRefundStatusIf(ctx context.Context, id int64, from, to domain.RefundStatus, decidedBy *int64) (bool, error)
	ListRefunds(ctx context.Context, status string, limit, offset int) ([]domain.Refund, error)

	CreateDispute(ctx context.Context, d *domain.Dispute) error
	GetDispute(ctx context.Context, id int64) (*domain.Dispute, error)
	UpdateDisputeStatusIf(ctx context.Context, id int64, from, to domain.DisputeStatus, resolution string) (bool, error)
	ListDisputes(ctx context.Context, status string, limit, offset int) ([]domain.Dispute, error)
}

type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	SetBookingPaymentStatus(ctx context.Context, bookingID int64, status domain.PaymentStatus) error
	UpdatePaymentStatusByBookingIf(ctx context.Context, bookingID int64, from, to domain.PaymentStatus) (bool, error)
}

type EventSink interface {
	Broadcast(ev events.Event)
}
