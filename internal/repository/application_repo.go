package repository

import (
	"context"
	"time"

	"bonzenga/internal/domain"

	"gorm.io/gorm"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *domain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	var a domain.Application
	tx := r.db.WithContext(ctx).First(&a, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &a, nil
}

// HasOpenForApplicant reports whether the applicant already has a
// non-terminal application of the given kind.
func (r *ApplicationRepository) HasOpenForApplicant(ctx context.Context, applicantID int64, kind domain.ApplicationKind) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&domain.Application{}).
		Where("applicant_id = ? AND kind = ? AND status IN ?", applicantID, kind,
			[]domain.ApplicationStatus{domain.ApplicationPendingManager, domain.ApplicationPendingAdmin}).
		Count(&cnt)
	return cnt > 0, tx.Error
}

func (r *ApplicationRepository) ListByStatus(ctx context.Context, status domain.ApplicationStatus, limit, offset int) ([]domain.Application, int, error) {
	q := r.db.WithContext(ctx).Model(&domain.Application{}).Where("status = ?", status)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []domain.Application
	if err := q.Order("created_at ASC").Limit(limit).Offset(offset).Find(&apps).Error; err != nil {
		return nil, 0, err
	}
	return apps, int(total), nil
}

// UpdateStatusIf commits the transition only when the row still carries the
// expected pre-state. Returns false when a concurrent decision won.
func (r *ApplicationRepository) UpdateStatusIf(ctx context.Context, id int64, from, to domain.ApplicationStatus, updates map[string]any) (bool, error) {
	if updates == nil {
		updates = map[string]any{}
	}
	updates["status"] = string(to)
	updates["updated_at"] = time.Now()

	tx := r.db.WithContext(ctx).
		Model(&domain.Application{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
