package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// EnsureProfileRequest данные пользователя из токена
type EnsureProfileRequest struct {
	UserID    uuid.UUID   `json:"userId"`
	Email     string      `json:"email"`
	FirstName *string     `json:"firstName,omitempty"`
	LastName  *string     `json:"lastName,omitempty"`
	Role      domain.Role `json:"role,omitempty"`
}

// AssignRoleRequest запрос на назначение роли
type AssignRoleRequest struct {
	Role string `json:"role"`
}

// ProfileResponse ответ с данными профиля
type ProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName *string   `json:"firstName,omitempty"`
	LastName  *string   `json:"lastName,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProfileListResponse список профилей
type ProfileListResponse struct {
	Profiles []ProfileResponse `json:"profiles"`
}

// FromDomainProfile конвертирует domain модель в DTO
func FromDomainProfile(p *domain.Profile) *ProfileResponse {
	return &ProfileResponse{
		ID:        p.ID,
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Role:      string(p.Role),
		CreatedAt: p.CreatedAt,
	}
}
