package booking

import (
	"context"
	"errors"
	"math"
	"time"

	"bonzenga/internal/domain"
	"bonzenga/internal/modules/events"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// forwardEdges lists the legal pre-states for each forward target.
// COMPLETED is reachable straight from CONFIRMED; IN_PROGRESS is an
// optional intermediate step. Cancellation is handled separately because
// it is reachable from every non-terminal state.
var forwardEdges = map[domain.BookingStatus][]domain.BookingStatus{
	domain.BookingConfirmed:  {domain.BookingPending},
	domain.BookingInProgress: {domain.BookingConfirmed},
	domain.BookingCompleted:  {domain.BookingConfirmed, domain.BookingInProgress},
}

type Service struct {
	bookings    BookingRepository
	vendors     VendorRepository
	services    ServiceRepository
	beauticians BeauticianRepository
	finance     CommissionRecorder
	sink        EventSink
	log         zerolog.Logger
}

func NewService(
	bookings BookingRepository,
	vendors VendorRepository,
	services ServiceRepository,
	beauticians BeauticianRepository,
	finance CommissionRecorder,
	sink EventSink,
	log zerolog.Logger,
) *Service {
	return &Service{
		bookings:    bookings,
		vendors:     vendors,
		services:    services,
		beauticians: beauticians,
		finance:     finance,
		sink:        sink,
		log:         log,
	}
}

// Create books one or more services with an APPROVED vendor. Item names
// and prices are snapshotted so later catalog edits never change the
// amount owed. A PENDING payment record is created in the same
// transaction.
func (s *Service) Create(ctx context.Context, customerID int64, req CreateRequest) (*domain.Booking, error) {
	vendor, err := s.vendors.GetByID(ctx, req.VendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if vendor.Status != domain.VendorApproved {
		return nil, ErrNotFound
	}

	date, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		return nil, ErrValidation
	}
	if !date.After(time.Now().Truncate(24 * time.Hour)) {
		return nil, ErrValidation
	}

	items, total, err := s.snapshotItems(ctx, vendor.ID, req.Items)
	if err != nil {
		return nil, err
	}

	b := &domain.Booking{
		CustomerID:    customerID,
		VendorID:      vendor.ID,
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentPending,
		ScheduledDate: date,
		ScheduledTime: req.ScheduledTime,
		Address:       req.Address,
		Notes:         req.Notes,
		Total:         total,
		Items:         items,
	}
	p := &domain.Payment{
		Reference: uuid.NewString(),
		Amount:    total,
		Status:    domain.PaymentPending,
	}

	if err := s.bookings.CreateWithPayment(ctx, b, p); err != nil {
		return nil, err
	}
	b.Payment = p

	s.sink.Broadcast(events.Event{
		Type:     events.TypeBookingCreated,
		EntityID: b.ID,
		Payload:  map[string]any{"vendor_id": b.VendorID, "total": b.Total},
		At:       time.Now(),
	})

	return b, nil
}

func (s *Service) snapshotItems(ctx context.Context, vendorID int64, reqs []ItemRequest) ([]domain.BookingItem, float64, error) {
	// A booking must select at least one service; don't rely on the
	// transport layer to enforce that.
	if len(reqs) == 0 {
		return nil, 0, ErrValidation
	}

	ids := make([]int64, 0, len(reqs))
	for _, it := range reqs {
		if it.Quantity <= 0 {
			return nil, 0, ErrValidation
		}
		ids = append(ids, it.ServiceID)
	}

	found, err := s.services.GetByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[int64]domain.Service, len(found))
	for _, svc := range found {
		byID[svc.ID] = svc
	}

	var items []domain.BookingItem
	var total float64
	for _, it := range reqs {
		svc, ok := byID[it.ServiceID]
		if !ok || svc.VendorID != vendorID || !svc.IsActive {
			return nil, 0, ErrValidation
		}
		items = append(items, domain.BookingItem{
			ServiceID: svc.ID,
			Name:      svc.Name,
			Quantity:  it.Quantity,
			Price:     svc.Price,
		})
		total += svc.Price * float64(it.Quantity)
	}

	return items, math.Round(total*100) / 100, nil
}

// AssignBeautician confirms a PENDING booking by attaching an APPROVED
// beautician. Only the owning vendor, a manager, or an admin may assign.
func (s *Service) AssignBeautician(ctx context.Context, actorID int64, actorRole domain.UserRole, bookingID, beauticianID int64) (*domain.Booking, error) {
	b, err := s.get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !s.canManage(actorID, actorRole, b) {
		return nil, ErrForbidden
	}

	beautician, err := s.beauticians.GetByID(ctx, beauticianID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if beautician.Status != domain.BeauticianApproved {
		return nil, ErrValidation
	}

	ok, err := s.bookings.UpdateStatusIf(ctx, bookingID,
		[]domain.BookingStatus{domain.BookingPending},
		domain.BookingConfirmed,
		map[string]any{"beautician_id": beauticianID},
	)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidState
	}

	return s.finish(ctx, bookingID, domain.BookingConfirmed)
}

// Transition moves a booking along its lifecycle. Forward moves belong
// to the vendor side, cancellation also to the customer who booked.
// A lost compare-and-set race surfaces as an invalid-state error, so
// two concurrent completions yield exactly one winner.
func (s *Service) Transition(ctx context.Context, actorID int64, actorRole domain.UserRole, bookingID int64, to domain.BookingStatus) (*domain.Booking, error) {
	b, err := s.get(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if to == domain.BookingCancelled {
		return s.cancel(ctx, actorID, actorRole, b)
	}

	if !s.canManage(actorID, actorRole, b) {
		return nil, ErrForbidden
	}

	from, found := forwardEdges[to]
	if !found {
		return nil, ErrValidation
	}

	ok, err := s.bookings.UpdateStatusIf(ctx, bookingID, from, to, nil)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidState
	}

	if to == domain.BookingCompleted {
		if err := s.finance.RecordBookingCommission(ctx, b); err != nil {
			// The booking is already COMPLETED; commission recording is
			// idempotent and can be replayed by an operator.
			s.log.Warn().Err(err).Int64("booking_id", b.ID).Msg("commission recording failed")
		}
	}

	return s.finish(ctx, bookingID, to)
}

func (s *Service) cancel(ctx context.Context, actorID int64, actorRole domain.UserRole, b *domain.Booking) (*domain.Booking, error) {
	allowed := s.canManage(actorID, actorRole, b) ||
		(actorRole == domain.RoleCustomer && b.CustomerID == actorID)
	if !allowed {
		return nil, ErrForbidden
	}

	now := time.Now()
	ok, err := s.bookings.UpdateStatusIf(ctx, b.ID,
		[]domain.BookingStatus{domain.BookingPending, domain.BookingConfirmed, domain.BookingInProgress},
		domain.BookingCancelled,
		map[string]any{"cancelled_at": now},
	)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidState
	}

	return s.finish(ctx, b.ID, domain.BookingCancelled)
}

// ConfirmPayment settles the booking's PENDING payment. Replaying the
// confirmation loses the compare-and-set and returns an invalid-state
// error instead of double-charging.
func (s *Service) ConfirmPayment(ctx context.Context, customerID, bookingID int64) (*domain.Booking, error) {
	b, err := s.get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != customerID {
		return nil, ErrForbidden
	}

	ok, err := s.bookings.UpdatePaymentStatusByBookingIf(ctx, bookingID, domain.PaymentPending, domain.PaymentPaid)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidState
	}
	if err := s.bookings.SetBookingPaymentStatus(ctx, bookingID, domain.PaymentPaid); err != nil {
		return nil, err
	}

	return s.bookings.GetByID(ctx, bookingID)
}

// FailPayment marks the payment record FAILED. Only the payment row is
// touched: the booking keeps its PENDING payment state, which never
// carries FAILED.
func (s *Service) FailPayment(ctx context.Context, customerID, bookingID int64) (*domain.Booking, error) {
	b, err := s.get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != customerID {
		return nil, ErrForbidden
	}

	ok, err := s.bookings.UpdatePaymentStatusByBookingIf(ctx, bookingID, domain.PaymentPending, domain.PaymentFailed)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidState
	}

	return s.bookings.GetByID(ctx, bookingID)
}

func (s *Service) Get(ctx context.Context, actorID int64, actorRole domain.UserRole, bookingID int64) (*domain.Booking, error) {
	b, err := s.get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !s.canView(actorID, actorRole, b) {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *Service) ListForCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListByCustomer(ctx, customerID, limit, offset)
}

func (s *Service) ListForVendor(ctx context.Context, vendorID int64, status string, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListByVendor(ctx, vendorID, status, limit, offset)
}

func (s *Service) ListForBeautician(ctx context.Context, beauticianID int64, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListByBeautician(ctx, beauticianID, limit, offset)
}

func (s *Service) get(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) canManage(actorID int64, actorRole domain.UserRole, b *domain.Booking) bool {
	switch actorRole {
	case domain.RoleManager, domain.RoleAdmin:
		return true
	case domain.RoleVendor:
		return b.VendorID == actorID
	default:
		return false
	}
}

func (s *Service) canView(actorID int64, actorRole domain.UserRole, b *domain.Booking) bool {
	if s.canManage(actorID, actorRole, b) {
		return true
	}
	if actorRole == domain.RoleCustomer && b.CustomerID == actorID {
		return true
	}
	if actorRole == domain.RoleBeautician && b.BeauticianID != nil && *b.BeauticianID == actorID {
		return true
	}
	return false
}

func (s *Service) finish(ctx context.Context, bookingID int64, to domain.BookingStatus) (*domain.Booking, error) {
	s.sink.Broadcast(events.Event{
		Type:     events.TypeBookingTransitioned,
		EntityID: bookingID,
		Payload:  map[string]any{"status": string(to)},
		At:       time.Now(),
	})
	return s.bookings.GetByID(ctx, bookingID)
}
