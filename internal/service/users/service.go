package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	profileRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/profile"
	"github.com/m04kA/SMC-ParkingService/internal/service/users/models"
)

// Service сервис профилей пользователей
type Service struct {
	profileRepo ProfileRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(profileRepo ProfileRepository, logger Logger) *Service {
	return &Service{profileRepo: profileRepo, logger: logger}
}

// EnsureProfile возвращает профиль пользователя, создавая его при первом обращении.
// Новый профиль получает роль из токена (по умолчанию user), дальше роль меняет только администратор.
// Роль никогда не выводится из email
func (s *Service) EnsureProfile(ctx context.Context, req *models.EnsureProfileRequest) (*models.ProfileResponse, error) {
	if req.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	existing, err := s.profileRepo.GetByID(ctx, req.UserID)
	if err == nil {
		return models.FromDomainProfile(existing), nil
	}
	if !errors.Is(err, profileRepo.ErrProfileNotFound) {
		s.logger.Error("EnsureProfile: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: EnsureProfile - repository error: %v", ErrInternal, err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required to create a profile", ErrInvalidInput)
	}

	role := domain.RoleUser
	if parsed, err := domain.ParseRole(string(req.Role)); err == nil {
		role = parsed
	}

	created, err := s.profileRepo.Create(ctx, &domain.Profile{
		ID:        req.UserID,
		Email:     email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
	})
	if err != nil {
		if errors.Is(err, profileRepo.ErrDuplicateEmail) {
			s.logger.Warn("EnsureProfile: email=%s is already used by another profile", email)
			return nil, fmt.Errorf("%w: email %s is already registered", ErrInvalidInput, email)
		}
		s.logger.Error("EnsureProfile: failed to create profile for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: EnsureProfile - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("EnsureProfile: created profile for user=%s, role=%s", req.UserID, created.Role)
	return models.FromDomainProfile(created), nil
}

// ListProfiles возвращает профили, отсортированные по email
func (s *Service) ListProfiles(ctx context.Context) (*models.ProfileListResponse, error) {
	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListProfiles: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListProfiles - repository error: %v", ErrInternal, err)
	}

	resp := &models.ProfileListResponse{Profiles: make([]models.ProfileResponse, 0, len(profiles))}
	for _, p := range profiles {
		resp.Profiles = append(resp.Profiles, *models.FromDomainProfile(p))
	}
	return resp, nil
}

// AssignRole назначает пользователю роль
func (s *Service) AssignRole(ctx context.Context, id uuid.UUID, req *models.AssignRoleRequest) (*models.ProfileResponse, error) {
	s.logger.Info("AssignRole: user=%s, role=%s", id, req.Role)

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.profileRepo.UpdateRole(ctx, id, role)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		s.logger.Error("AssignRole: repository error for user=%s: %v", id, err)
		return nil, fmt.Errorf("%w: AssignRole - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AssignRole: user=%s is now %s", id, updated.Role)
	return models.FromDomainProfile(updated), nil
}

// ResolveRole возвращает сохраненную роль пользователя; found равен false, если профиля нет
func (s *Service) ResolveRole(ctx context.Context, id uuid.UUID) (domain.Role, bool, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			return "", false, nil
		}
		s.logger.Error("ResolveRole: repository error for user=%s: %v", id, err)
		return "", false, fmt.Errorf("%w: ResolveRole - repository error: %v", ErrInternal, err)
	}
	return profile.Role, true, nil
}
