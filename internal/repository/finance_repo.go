package repository

import (
	"context"
	"errors"
	"time"

	"bonzenga/internal/domain"

	"gorm.io/gorm"
)

type FinanceRepository struct {
	db *gorm.DB
}

func NewFinanceRepository(db *gorm.DB) *FinanceRepository {
	return &FinanceRepository{db: db}
}

func (r *FinanceRepository) DB() *gorm.DB { return r.db }

// -------------------- Commission rules --------------------

func (r *FinanceRepository) ActiveGlobalRule(ctx context.Context) (*domain.Commission, error) {
	var c domain.Commission
	tx := r.db.WithContext(ctx).
		Where("scope = ? AND is_active = ?", domain.CommissionGlobal, true).
		First(&c)
	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &c, nil
}

func (r *FinanceRepository) ActiveVendorRule(ctx context.Context, vendorID int64) (*domain.Commission, error) {
	var c domain.Commission
	tx := r.db.WithContext(ctx).
		Where("scope = ? AND vendor_id = ? AND is_active = ?", domain.CommissionVendorSpecific, vendorID, true).
		First(&c)
	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &c, nil
}

// UpsertRule deactivates the currently active rule for the scope and
// inserts the new one, keeping at most one active rule per scope.
func (r *FinanceRepository) UpsertRule(ctx context.Context, c *domain.Commission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&domain.Commission{}).Where("scope = ? AND is_active = ?", c.Scope, true)
		if c.Scope == domain.CommissionVendorSpecific {
			q = q.Where("vendor_id = ?", *c.VendorID)
		}
		if err := q.Updates(map[string]any{"is_active": false, "updated_at": time.Now()}).Error; err != nil {
			return err
		}

		c.IsActive = true
		return tx.Create(c).Error
	})
}

func (r *FinanceRepository) ListRules(ctx context.Context) ([]domain.Commission, error) {
	var out []domain.Commission
	tx := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("scope ASC").
		Find(&out)
	return out, tx.Error
}

// -------------------- Earnings --------------------

// CreateEarning inserts the per-booking commission record. The unique index
// on booking_id rejects replays of the same completion event.
func (r *FinanceRepository) CreateEarning(ctx context.Context, e *domain.Earning) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *FinanceRepository) GetEarningByBooking(ctx context.Context, bookingID int64) (*domain.Earning, error) {
	var e domain.Earning
	tx := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&e)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &e, nil
}

// -------------------- Payouts --------------------

func (r *FinanceRepository) CreatePayout(ctx context.Context, p *domain.Payout) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *FinanceRepository) GetPayout(ctx context.Context, id int64) (*domain.Payout, error) {
	var p domain.Payout
	tx := r.db.WithContext(ctx).First(&p, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &p, nil
}

func (r *FinanceRepository) UpdatePayoutStatusIf(ctx context.Context, id int64, from, to domain.PayoutStatus, decidedBy *int64) (bool, error) {
	updates := map[string]any{"status": string(to), "updated_at": time.Now()}
	if decidedBy != nil {
		updates["decided_by"] = *decidedBy
	}

	tx := r.db.WithContext(ctx).
		Model(&domain.Payout{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *FinanceRepository) ListPayouts(ctx context.Context, vendorID int64, status string, limit, offset int) ([]domain.Payout, error) {
	q := r.db.WithContext(ctx).Model(&domain.Payout{})
	if vendorID > 0 {
		q = q.Where("vendor_id = ?", vendorID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var out []domain.Payout
	tx := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&out)
	return out, tx.Error
}

// -------------------- Refunds --------------------

func (r *FinanceRepository) CreateRefund(ctx context.Context, rf *domain.Refund) error {
	return r.db.WithContext(ctx).Create(rf).Error
}

func (r *FinanceRepository) GetRefund(ctx context.Context, id int64) (*domain.Refund, error) {
	var rf domain.Refund
	tx := r.db.WithContext(ctx).First(&rf, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &rf, nil
}

func (r *FinanceRepository) UpdateRefundStatusIf(ctx context.Context, id int64, from, to domain.RefundStatus, decidedBy *int64) (bool, error) {
	updates := map[string]any{"status": string(to), "updated_at": time.Now()}
	if decidedBy != nil {
		updates["decided_by"] = *decidedBy
	}

	tx := r.db.WithContext(ctx).
		Model(&domain.Refund{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *FinanceRepository) ListRefunds(ctx context.Context, status string, limit, offset int) ([]domain.Refund, error) {
	q := r.db.WithContext(ctx).Model(&domain.Refund{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var out []domain.Refund
	tx := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&out)
	return out, tx.Error
}

// -------------------- Disputes --------------------

func (r *FinanceRepository) CreateDispute(ctx context.Context, d *domain.Dispute) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *FinanceRepository) GetDispute(ctx context.Context, id int64) (*domain.Dispute, error) {
	var d domain.Dispute
	tx := r.db.WithContext(ctx).First(&d, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &d, nil
}

func (r *FinanceRepository) UpdateDisputeStatusIf(ctx context.Context, id int64, from, to domain.DisputeStatus, resolution string) (bool, error) {
	updates := map[string]any{"status": string(to), "updated_at": time.Now()}
	if resolution != "" {
		updates["resolution"] = resolution
	}

	tx := r.db.WithContext(ctx).
		Model(&domain.Dispute{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *FinanceRepository) ListDisputes(ctx context.Context, status string, limit, offset int) ([]domain.Dispute, error) {
	q := r.db.WithContext(ctx).Model(&domain.Dispute{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var out []domain.Dispute
	tx := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&out)
	return out, tx.Error
}
