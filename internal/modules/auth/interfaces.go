package auth

import (
	"context"

	"bonzenga/internal/domain"
	"bonzenga/internal/modules/events"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type VendorRepository interface {
	Create(ctx context.Context, v *domain.Vendor) error
}

type BeauticianRepository interface {
	Create(ctx context.Context, b *domain.Beautician) error
}

type ApplicationRepository interface {
	Create(ctx context.Context, a *domain.Application) error
}

type EventSink interface {
	Broadcast(ev events.Event)
}
