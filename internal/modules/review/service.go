package review

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"bonzenga/internal/domain"
	"bonzenga/internal/modules/events"

	"gorm.io/gorm"
)

type Service struct {
	apps        ApplicationRepository
	vendors     VendorActivator
	beauticians BeauticianActivator
	sink        EventSink
}

func NewService(apps ApplicationRepository, vendors VendorActivator, beauticians BeauticianActivator, sink EventSink) *Service {
	return &Service{
		apps:        apps,
		vendors:     vendors,
		beauticians: beauticians,
		sink:        sink,
	}
}

// Submit opens a new application for an account that registered before
// applying (or re-applies after rejection).
func (s *Service) Submit(ctx context.Context, applicantID int64, role domain.UserRole, req SubmitRequest) (*domain.Application, error) {
	var kind domain.ApplicationKind
	switch role {
	case domain.RoleVendor:
		kind = domain.ApplicationVendor
	case domain.RoleBeautician:
		kind = domain.ApplicationBeautician
	default:
		return nil, ErrForbidden
	}

	open, err := s.apps.HasOpenForApplicant(ctx, applicantID, kind)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, ErrInvalidState
	}

	skills, _ := json.Marshal(req.Skills)
	app := &domain.Application{
		ApplicantID: applicantID,
		Kind:        kind,
		Status:      domain.ApplicationPendingManager,
		Profile:     req.Profile,
		Skills:      string(skills),
	}
	if err := s.apps.Create(ctx, app); err != nil {
		return nil, err
	}

	if s.sink != nil {
		s.sink.Broadcast(events.Event{
			Type:     events.TypeApplicationSubmitted,
			EntityID: app.ID,
			Payload:  map[string]any{"kind": kind, "applicant_id": applicantID},
		})
	}

	return app, nil
}

// Review applies one stage of the two-step pipeline. The manager decides
// PENDING_MANAGER_REVIEW, the admin decides PENDING_ADMIN_REVIEW; any other
// combination is refused. Concurrent decisions on the same application
// serialize through the status compare-and-set: the loser gets
// ErrInvalidState.
func (s *Service) Review(ctx context.Context, applicationID, actorID int64, actorRole domain.UserRole, req ReviewRequest) (*domain.Application, error) {
	if req.Decision != DecisionApprove && req.Decision != DecisionReject {
		return nil, ErrValidation
	}
	if req.Decision == DecisionReject && strings.TrimSpace(req.Notes) == "" {
		return nil, ErrValidation
	}

	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if app.Status.Terminal() {
		return nil, ErrInvalidState
	}

	switch app.Status {
	case domain.ApplicationPendingManager:
		if actorRole != domain.RoleManager {
			return nil, ErrForbidden
		}
		return s.managerDecide(ctx, app, req)
	case domain.ApplicationPendingAdmin:
		if actorRole != domain.RoleAdmin {
			return nil, ErrForbidden
		}
		return s.adminDecide(ctx, app, req)
	default:
		return nil, ErrInvalidState
	}
}

func (s *Service) managerDecide(ctx context.Context, app *domain.Application, req ReviewRequest) (*domain.Application, error) {
	now := time.Now()

	if req.Decision == DecisionReject {
		ok, err := s.apps.UpdateStatusIf(ctx, app.ID, domain.ApplicationPendingManager, domain.ApplicationRejected, map[string]any{
			"manager_notes": req.Notes,
			"decided_at":    now,
		})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrInvalidState
		}
		return s.finish(ctx, app.ID)
	}

	ok, err := s.apps.UpdateStatusIf(ctx, app.ID, domain.ApplicationPendingManager, domain.ApplicationPendingAdmin, map[string]any{
		"manager_notes":       req.Notes,
		"manager_approved_at": now,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidState
	}
	return s.finish(ctx, app.ID)
}

func (s *Service) adminDecide(ctx context.Context, app *domain.Application, req ReviewRequest) (*domain.Application, error) {
	now := time.Now()

	to := domain.ApplicationApproved
	if req.Decision == DecisionReject {
		to = domain.ApplicationRejected
	}

	ok, err := s.apps.UpdateStatusIf(ctx, app.ID, domain.ApplicationPendingAdmin, to, map[string]any{
		"admin_notes": req.Notes,
		"decided_at":  now,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidState
	}

	if to == domain.ApplicationApproved {
		if err := s.activate(ctx, app); err != nil {
			return nil, err
		}
	}

	return s.finish(ctx, app.ID)
}

// activate makes the applicant live in the catalog. The profile row was
// created at registration in a pre-approval status, so the flip is
// naturally idempotent: a replay finds no row in the expected pre-state and
// does nothing.
func (s *Service) activate(ctx context.Context, app *domain.Application) error {
	switch app.Kind {
	case domain.ApplicationVendor:
		_, err := s.vendors.UpdateStatusIf(ctx, app.ApplicantID,
			[]domain.VendorStatus{domain.VendorPending, domain.VendorRejected},
			domain.VendorApproved)
		return err
	case domain.ApplicationBeautician:
		_, err := s.beauticians.UpdateStatusIf(ctx, app.ApplicantID,
			[]domain.BeauticianStatus{domain.BeauticianPending, domain.BeauticianRejected},
			domain.BeauticianApproved)
		return err
	}
	return nil
}

func (s *Service) finish(ctx context.Context, id int64) (*domain.Application, error) {
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.sink != nil {
		s.sink.Broadcast(events.Event{
			Type:     events.TypeApplicationReviewed,
			EntityID: app.ID,
			Payload:  map[string]any{"status": app.Status, "kind": app.Kind},
		})
	}
	return app, nil
}

// ListPending returns the caller's review queue: managers see first-stage
// applications, admins see second-stage ones.
func (s *Service) ListPending(ctx context.Context, actorRole domain.UserRole, limit, offset int) ([]domain.Application, int, error) {
	switch actorRole {
	case domain.RoleManager:
		return s.apps.ListByStatus(ctx, domain.ApplicationPendingManager, limit, offset)
	case domain.RoleAdmin:
		return s.apps.ListByStatus(ctx, domain.ApplicationPendingAdmin, limit, offset)
	default:
		return nil, 0, ErrForbidden
	}
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Application, error) {
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return app, nil
}
