package auth

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"bonzenga/internal/domain"
	"bonzenga/internal/modules/events"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type jwtService interface {
	GenerateToken(userID int64, role domain.UserRole) (string, error)
}

type Service struct {
	users       UserRepository
	vendors     VendorRepository
	beauticians BeauticianRepository
	apps        ApplicationRepository
	jwt         jwtService
	sink        EventSink
}

func NewService(
	users UserRepository,
	vendors VendorRepository,
	beauticians BeauticianRepository,
	apps ApplicationRepository,
	jwt jwtService,
	sink EventSink,
) *Service {
	return &Service{
		users:       users,
		vendors:     vendors,
		beauticians: beauticians,
		apps:        apps,
		jwt:         jwt,
		sink:        sink,
	}
}

func (s *Service) RegisterCustomer(ctx context.Context, req RegisterCustomerRequest) (*domain.User, error) {
	if err := s.ensureEmailFree(ctx, req.Email); err != nil {
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Role:         domain.RoleCustomer,
		Status:       domain.AccountActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// RegisterVendor creates the account, the PENDING shop profile and the
// application that enters the review pipeline at the manager stage.
func (s *Service) RegisterVendor(ctx context.Context, req RegisterVendorRequest) (*domain.User, *domain.Application, error) {
	if err := s.ensureEmailFree(ctx, req.Email); err != nil {
		return nil, nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Role:         domain.RoleVendor,
		Status:       domain.AccountActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	vendor := &domain.Vendor{
		ID:          user.ID,
		ShopName:    req.ShopName,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Status:      domain.VendorPending,
	}
	if err := s.vendors.Create(ctx, vendor); err != nil {
		return nil, nil, err
	}

	profile, _ := json.Marshal(map[string]string{
		"shop_name": req.ShopName,
		"address":   req.Address,
		"city":      req.City,
	})

	app := &domain.Application{
		ApplicantID: user.ID,
		Kind:        domain.ApplicationVendor,
		Status:      domain.ApplicationPendingManager,
		Profile:     string(profile),
	}
	if err := s.apps.Create(ctx, app); err != nil {
		return nil, nil, err
	}

	if s.sink != nil {
		s.sink.Broadcast(events.Event{
			Type:     events.TypeApplicationSubmitted,
			EntityID: app.ID,
			Payload:  map[string]any{"kind": app.Kind, "applicant_id": user.ID},
		})
	}

	user.PasswordHash = ""
	return user, app, nil
}

func (s *Service) RegisterBeautician(ctx context.Context, req RegisterBeauticianRequest) (*domain.User, *domain.Application, error) {
	if err := s.ensureEmailFree(ctx, req.Email); err != nil {
		return nil, nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Role:         domain.RoleBeautician,
		Status:       domain.AccountActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	skills, _ := json.Marshal(req.Skills)
	certs, _ := json.Marshal(req.Certifications)

	beautician := &domain.Beautician{
		ID:             user.ID,
		Skills:         string(skills),
		ExperienceYrs:  req.Experience,
		Certifications: string(certs),
		Bio:            req.Bio,
		Status:         domain.BeauticianPending,
	}
	if err := s.beauticians.Create(ctx, beautician); err != nil {
		return nil, nil, err
	}

	app := &domain.Application{
		ApplicantID: user.ID,
		Kind:        domain.ApplicationBeautician,
		Status:      domain.ApplicationPendingManager,
		Skills:      string(skills),
	}
	if err := s.apps.Create(ctx, app); err != nil {
		return nil, nil, err
	}

	if s.sink != nil {
		s.sink.Broadcast(events.Event{
			Type:     events.TypeApplicationSubmitted,
			EntityID: app.ID,
			Payload:  map[string]any{"kind": app.Kind, "applicant_id": user.ID},
		})
	}

	user.PasswordHash = ""
	return user, app, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Status == domain.AccountSuspended {
		return nil, ErrAccountSuspended
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &LoginResult{User: user, AccessToken: token}, nil
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *Service) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return ErrEmailTaken
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", ErrValidation
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
