package users

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/service/users/models"
)

type UserService interface {
	EnsureProfile(ctx context.Context, req *models.EnsureProfileRequest) (*models.ProfileResponse, error)
	ListProfiles(ctx context.Context) (*models.ProfileListResponse, error)
	AssignRole(ctx context.Context, id uuid.UUID, req *models.AssignRoleRequest) (*models.ProfileResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
