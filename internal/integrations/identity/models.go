package identity

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Claims claims токена доступа: sub содержит UUID пользователя
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Principal аутентифицированный пользователь запроса
type Principal struct {
	UserID uuid.UUID
	Role   domain.Role
	Email  string
}

// IsAdmin возвращает true для администратора
func (p Principal) IsAdmin() bool {
	return p.Role.IsAdmin()
}
