package repository

import (
	"context"
	"strings"
	"time"

	"bonzenga/internal/domain"

	"gorm.io/gorm"
)

type VendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

func (r *VendorRepository) DB() *gorm.DB { return r.db }

func (r *VendorRepository) Create(ctx context.Context, v *domain.Vendor) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VendorRepository) GetByID(ctx context.Context, id int64) (*domain.Vendor, error) {
	var v domain.Vendor
	tx := r.db.WithContext(ctx).First(&v, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &v, nil
}

func (r *VendorRepository) GetByIDWithServices(ctx context.Context, id int64) (*domain.Vendor, error) {
	var v domain.Vendor
	tx := r.db.WithContext(ctx).
		Preload("Services", "is_active = ?", true).
		First(&v, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &v, nil
}

func (r *VendorRepository) ListApproved(ctx context.Context, city string, limit, offset int) ([]domain.Vendor, int, error) {
	q := r.db.WithContext(ctx).Model(&domain.Vendor{}).Where("status = ?", domain.VendorApproved)
	if strings.TrimSpace(city) != "" {
		q = q.Where("LOWER(city) = ?", strings.ToLower(strings.TrimSpace(city)))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var vendors []domain.Vendor
	if err := q.Order("shop_name ASC").Limit(limit).Offset(offset).Find(&vendors).Error; err != nil {
		return nil, 0, err
	}
	return vendors, int(total), nil
}

func (r *VendorRepository) UpdateStatusIf(ctx context.Context, id int64, from []domain.VendorStatus, to domain.VendorStatus) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Vendor{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(map[string]any{"status": string(to), "updated_at": time.Now()})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *VendorRepository) UpdateProfile(ctx context.Context, v *domain.Vendor) error {
	return r.db.WithContext(ctx).
		Model(&domain.Vendor{}).
		Where("id = ?", v.ID).
		Updates(map[string]any{
			"shop_name":   v.ShopName,
			"description": v.Description,
			"address":     v.Address,
			"city":        v.City,
			"updated_at":  time.Now(),
		}).Error
}
