package repository

import (
	"context"
	"time"

	"bonzenga/internal/domain"

	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	var s domain.Service
	tx := r.db.WithContext(ctx).First(&s, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &s, nil
}

func (r *ServiceRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Service, error) {
	var out []domain.Service
	tx := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out)
	return out, tx.Error
}

func (r *ServiceRepository) ListByVendor(ctx context.Context, vendorID int64, activeOnly bool) ([]domain.Service, error) {
	q := r.db.WithContext(ctx).Where("vendor_id = ?", vendorID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var out []domain.Service
	tx := q.Order("name ASC").Find(&out)
	return out, tx.Error
}

func (r *ServiceRepository) Update(ctx context.Context, s *domain.Service) error {
	return r.db.WithContext(ctx).
		Model(&domain.Service{}).
		Where("id = ?", s.ID).
		Updates(map[string]any{
			"name":         s.Name,
			"description":  s.Description,
			"price":        s.Price,
			"duration_min": s.DurationMin,
			"is_active":    s.IsActive,
			"updated_at":   time.Now(),
		}).Error
}

func (r *ServiceRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Service{}, id).Error
}
