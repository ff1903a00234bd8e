package repository

import (
	"context"
	"time"

	"bonzenga/internal/domain"

	"gorm.io/gorm"
)

type BeauticianRepository struct {
	db *gorm.DB
}

func NewBeauticianRepository(db *gorm.DB) *BeauticianRepository {
	return &BeauticianRepository{db: db}
}

func (r *BeauticianRepository) Create(ctx context.Context, b *domain.Beautician) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BeauticianRepository) GetByID(ctx context.Context, id int64) (*domain.Beautician, error) {
	var b domain.Beautician
	tx := r.db.WithContext(ctx).First(&b, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &b, nil
}

func (r *BeauticianRepository) ListByStatus(ctx context.Context, status domain.BeauticianStatus, limit, offset int) ([]domain.Beautician, int, error) {
	q := r.db.WithContext(ctx).Model(&domain.Beautician{}).Where("status = ?", status)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []domain.Beautician
	if err := q.Order("created_at ASC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, int(total), nil
}

func (r *BeauticianRepository) UpdateStatusIf(ctx context.Context, id int64, from []domain.BeauticianStatus, to domain.BeauticianStatus) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Beautician{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(map[string]any{"status": string(to), "updated_at": time.Now()})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
