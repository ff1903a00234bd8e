package review

import (
	"context"

	"bonzenga/internal/domain"
	"bonzenga/internal/modules/events"
)

type ApplicationRepository interface {
	Create(ctx context.Context, a *domain.Application) error
	GetByID(ctx context.Context, id int64) (*domain.Application, error)
	HasOpenForApplicant(ctx context.Context, applicantID int64, kind domain.ApplicationKind) (bool, error)
	ListByStatus(ctx context.Context, status domain.ApplicationStatus, limit, offset int) ([]domain.Application, int, error)
	UpdateStatusIf(ctx context.Context, id int64, from, to domain.ApplicationStatus, updates map[string]any) (bool, error)
}

// VendorActivator flips the catalog entry live on final approval.
type VendorActivator interface {
	UpdateStatusIf(ctx context.Context, id int64, from []domain.VendorStatus, to domain.VendorStatus) (bool, error)
}

type BeauticianActivator interface {
	UpdateStatusIf(ctx context.Context, id int64, from []domain.BeauticianStatus, to domain.BeauticianStatus) (bool, error)
}

type EventSink interface {
	Broadcast(ev events.Event)
}
