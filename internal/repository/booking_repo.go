package repository

import (
	"context"
	"time"

	"bonzenga/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) DB() *gorm.DB { return r.db }

// CreateWithPayment persists the booking, its line items and the linked
// payment record in one transaction.
func (r *BookingRepository) CreateWithPayment(ctx context.Context, b *domain.Booking, p *domain.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(b).Error; err != nil {
			return err
		}

		p.BookingID = b.ID
		if err := tx.Create(p).Error; err != nil {
			return err
		}

		b.Payment = p
		return nil
	})
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	tx := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payment").
		First(&b, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &b, nil
}

// UpdateStatusIf is the compare-and-set for the booking status axis.
func (r *BookingRepository) UpdateStatusIf(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus, updates map[string]any) (bool, error) {
	if updates == nil {
		updates = map[string]any{}
	}
	updates["status"] = string(to)
	updates["updated_at"] = time.Now()

	tx := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *BookingRepository) SetBookingPaymentStatus(ctx context.Context, bookingID int64, status domain.PaymentStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ?", bookingID).
		Updates(map[string]any{"payment_status": string(status), "updated_at": time.Now()}).
		Error
}

func (r *BookingRepository) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Booking, error) {
	var out []domain.Booking
	tx := r.db.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&out)
	return out, tx.Error
}

func (r *BookingRepository) ListByVendor(ctx context.Context, vendorID int64, status string, limit, offset int) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).Preload("Items").Where("vendor_id = ?", vendorID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var out []domain.Booking
	tx := q.Order("scheduled_date DESC").Limit(limit).Offset(offset).Find(&out)
	return out, tx.Error
}

func (r *BookingRepository) ListByBeautician(ctx context.Context, beauticianID int64, limit, offset int) ([]domain.Booking, error) {
	var out []domain.Booking
	tx := r.db.WithContext(ctx).
		Preload("Items").
		Where("beautician_id = ?", beauticianID).
		Order("scheduled_date DESC").
		Limit(limit).Offset(offset).
		Find(&out)
	return out, tx.Error
}

func (r *BookingRepository) GetPayment(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	var p domain.Payment
	tx := r.db.WithContext(ctx).First(&p, paymentID)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &p, nil
}

// UpdatePaymentStatusIf is the compare-and-set for the payment record.
func (r *BookingRepository) UpdatePaymentStatusIf(ctx context.Context, paymentID int64, from, to domain.PaymentStatus) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("id = ? AND status = ?", paymentID, from).
		Updates(map[string]any{"status": string(to), "updated_at": time.Now()})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *BookingRepository) UpdatePaymentStatusByBookingIf(ctx context.Context, bookingID int64, from, to domain.PaymentStatus) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("booking_id = ? AND status = ?", bookingID, from).
		Updates(map[string]any{"status": string(to), "updated_at": time.Now()})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
