package finance

import (
	"context"
	"errors"
	"math"
	"time"

	"bonzenga/internal/domain"
	"bonzenga/internal/modules/events"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type Service struct {
	repo     FinanceRepository
	bookings BookingReader
	sink     EventSink
	log      zerolog.Logger
}

func NewService(repo FinanceRepository, bookings BookingReader, sink EventSink, log zerolog.Logger) *Service {
	return &Service{repo: repo, bookings: bookings, sink: sink, log: log}
}

// SplitCommission applies a percentage rate to a gross amount. Both
// shares are rounded to cents; the platform share absorbs the rounding
// remainder so the two always sum to the gross.
func SplitCommission(gross, rate float64) Split {
	platform := round2(gross * rate / 100)
	return Split{
		Gross:         round2(gross),
		Rate:          rate,
		VendorShare:   round2(gross - platform),
		PlatformShare: platform,
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// ComputeCommission resolves the effective rate for a vendor: an active
// vendor-specific override wins, otherwise the active global rule.
func (s *Service) ComputeCommission(ctx context.Context, vendorID int64, gross float64) (Split, error) {
	rule, err := s.repo.ActiveVendorRule(ctx, vendorID)
	if err != nil {
		return Split{}, err
	}
	if rule == nil {
		rule, err = s.repo.ActiveGlobalRule(ctx)
		if err != nil {
			return Split{}, err
		}
	}
	if rule == nil {
		return Split{}, ErrNoCommissionRule
	}
	return SplitCommission(gross, rule.Percentage), nil
}

// SetCommission activates a new rule, deactivating the previous one in
// the same scope.
func (s *Service) SetCommission(ctx context.Context, req CommissionRequest) (*domain.Commission, error) {
	scope := domain.CommissionScope(req.Scope)
	if scope != domain.CommissionGlobal && scope != domain.CommissionVendorSpecific {
		return nil, ErrValidation
	}
	if scope == domain.CommissionVendorSpecific && req.VendorID == nil {
		return nil, ErrValidation
	}
	if scope == domain.CommissionGlobal && req.VendorID != nil {
		return nil, ErrValidation
	}
	if req.Percentage < 0 || req.Percentage > 100 {
		return nil, ErrValidation
	}

	rule := &domain.Commission{
		Scope:      scope,
		VendorID:   req.VendorID,
		Percentage: req.Percentage,
		IsActive:   true,
	}
	if err := s.repo.UpsertRule(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *Service) ListCommissions(ctx context.Context) ([]domain.Commission, error) {
	return s.repo.ListRules(ctx)
}

// RecordBookingCommission writes the earning for a completed booking.
// The earning table is unique on booking ID, so a replayed completion
// hits the constraint and is treated as already recorded.
func (s *Service) RecordBookingCommission(ctx context.Context, b *domain.Booking) error {
	split, err := s.ComputeCommission(ctx, b.VendorID, b.Total)
	if err != nil {
		return err
	}

	e := &domain.Earning{
		BookingID:     b.ID,
		VendorID:      b.VendorID,
		Gross:         split.Gross,
		Rate:          split.Rate,
		VendorShare:   split.VendorShare,
		PlatformShare: split.PlatformShare,
	}
	if err := s.repo.CreateEarning(ctx, e); err != nil {
		if isDuplicateKey(err) {
			s.log.Debug().Int64("booking_id", b.ID).Msg("earning already recorded")
			return nil
		}
		return err
	}
	return nil
}

func (s *Service) GetEarning(ctx context.Context, bookingID int64) (*domain.Earning, error) {
	e, err := s.repo.GetEarningByBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *Service) RequestPayout(ctx context.Context, vendorID int64, req PayoutRequest) (*domain.Payout, error) {
	if req.Amount <= 0 {
		return nil, ErrValidation
	}

	p := &domain.Payout{
		VendorID:    vendorID,
		Reference:   uuid.NewString(),
		Amount:      round2(req.Amount),
		Description: req.Description,
		Status:      domain.PayoutPending,
	}
	if err := s.repo.CreatePayout(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DecidePayout moves a payout PENDING -> APPROVED/REJECTED, then
// APPROVED -> PAID once the transfer is made. Deciding twice loses the
// compare-and-set and fails.
func (s *Service) DecidePayout(ctx context.Context, adminID, payoutID int64, to domain.PayoutStatus) (*domain.Payout, error) {
	var from domain.PayoutStatus
	switch to {
	case domain.PayoutApproved, domain.PayoutRejected:
		from = domain.PayoutPending
	case domain.PayoutPaid:
		from = domain.PayoutApproved
	default:
		return nil, ErrValidation
	}

	ok, err := s.repo.UpdatePayoutStatusIf(ctx, payoutID, from, to, &adminID)
	if err != nil {
		return nil, err
	}
	if !ok {
		if _, gerr := s.getPayout(ctx, payoutID); gerr != nil {
			return nil, gerr
		}
		return nil, ErrInvalidState
	}

	return s.getPayout(ctx, payoutID)
}

func (s *Service) getPayout(ctx context.Context, id int64) (*domain.Payout, error) {
	p, err := s.repo.GetPayout(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) ListPayouts(ctx context.Context, vendorID int64, status string, limit, offset int) ([]domain.Payout, error) {
	return s.repo.ListPayouts(ctx, vendorID, status, limit, offset)
}

// RequestRefund opens a refund for a booking the customer paid for.
// The refund amount is the full booking total.
func (s *Service) RequestRefund(ctx context.Context, customerID int64, req RefundRequest) (*domain.Refund, error) {
	b, err := s.getBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != customerID {
		return nil, ErrForbidden
	}
	if b.PaymentStatus != domain.PaymentPaid {
		return nil, ErrInvalidState
	}

	rf := &domain.Refund{
		BookingID:  b.ID,
		CustomerID: customerID,
		Reference:  uuid.NewString(),
		Amount:     b.Total,
		Reason:     req.Reason,
		Status:     domain.RefundPending,
	}
	if err := s.repo.CreateRefund(ctx, rf); err != nil {
		return nil, err
	}
	return rf, nil
}

// DecideRefund approves or rejects a pending refund. Approval flips the
// booking's payment to REFUNDED; approving twice fails on the
// compare-and-set and the money moves once.
func (s *Service) DecideRefund(ctx context.Context, adminID, refundID int64, approve bool) (*domain.Refund, error) {
	to := domain.RefundRejected
	if approve {
		to = domain.RefundApproved
	}

	ok, err := s.repo.UpdateRefundStatusIf(ctx, refundID, domain.RefundPending, to, &adminID)
	if err != nil {
		return nil, err
	}
	if !ok {
		if _, gerr := s.getRefund(ctx, refundID); gerr != nil {
			return nil, gerr
		}
		return nil, ErrInvalidState
	}

	rf, err := s.getRefund(ctx, refundID)
	if err != nil {
		return nil, err
	}

	if approve {
		flipped, err := s.bookings.UpdatePaymentStatusByBookingIf(ctx, rf.BookingID, domain.PaymentPaid, domain.PaymentRefunded)
		if err != nil {
			return nil, err
		}
		if flipped {
			if err := s.bookings.SetBookingPaymentStatus(ctx, rf.BookingID, domain.PaymentRefunded); err != nil {
				return nil, err
			}
		}
	}

	return rf, nil
}

func (s *Service) getRefund(ctx context.Context, id int64) (*domain.Refund, error) {
	rf, err := s.repo.GetRefund(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rf, nil
}

func (s *Service) ListRefunds(ctx context.Context, status string, limit, offset int) ([]domain.Refund, error) {
	return s.repo.ListRefunds(ctx, status, limit, offset)
}

// OpenDispute records a customer complaint against their own booking.
func (s *Service) OpenDispute(ctx context.Context, customerID int64, req DisputeRequest) (*domain.Dispute, error) {
	b, err := s.getBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != customerID {
		return nil, ErrForbidden
	}

	d := &domain.Dispute{
		BookingID:   b.ID,
		CustomerID:  customerID,
		VendorID:    b.VendorID,
		Description: req.Description,
		Status:      domain.DisputeOpen,
	}
	if err := s.repo.CreateDispute(ctx, d); err != nil {
		return nil, err
	}

	s.sink.Broadcast(events.Event{
		Type:     events.TypeDisputeOpened,
		EntityID: d.ID,
		Payload:  map[string]any{"booking_id": b.ID},
		At:       time.Now(),
	})

	return d, nil
}

// AdvanceDispute walks the dispute pipeline in order: OPEN ->
// INVESTIGATING -> RESOLVED or CLOSED. Stages cannot be skipped and
// resolving requires a resolution note.
func (s *Service) AdvanceDispute(ctx context.Context, disputeID int64, to domain.DisputeStatus, resolution string) (*domain.Dispute, error) {
	var from domain.DisputeStatus
	switch to {
	case domain.DisputeInvestigating:
		from = domain.DisputeOpen
	case domain.DisputeResolved:
		if resolution == "" {
			return nil, ErrValidation
		}
		from = domain.DisputeInvestigating
	case domain.DisputeClosed:
		from = domain.DisputeInvestigating
	default:
		return nil, ErrValidation
	}

	ok, err := s.repo.UpdateDisputeStatusIf(ctx, disputeID, from, to, resolution)
	if err != nil {
		return nil, err
	}
	if !ok {
		if _, gerr := s.getDispute(ctx, disputeID); gerr != nil {
			return nil, gerr
		}
		return nil, ErrInvalidState
	}

	return s.getDispute(ctx, disputeID)
}

func (s *Service) getDispute(ctx context.Context, id int64) (*domain.Dispute, error) {
	d, err := s.repo.GetDispute(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *Service) ListDisputes(ctx context.Context, status string, limit, offset int) ([]domain.Dispute, error) {
	return s.repo.ListDisputes(ctx, status, limit, offset)
}

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
