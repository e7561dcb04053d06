package transition_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// Actor инициатор перехода
type Actor struct {
	UserID uuid.UUID
	Role   domain.Role
}

// SystemActor фоновые задачи сервиса (например, sweeper) действуют с правами администратора
var SystemActor = Actor{Role: domain.RoleAdmin}

// Request запрос на переход статуса
type Request struct {
	BookingID   uuid.UUID
	Event       domain.BookingEvent
	Actor       Actor
	FineAmount  *float64   // только для fine; по умолчанию сумма из конфига
	EffectiveAt *time.Time // момент въезда/выезда; по умолчанию текущее время
}

// Response бронирование после перехода
type Response struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	SpotID     uuid.UUID
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
	Status     string
	EntryTime  *time.Time
	ExitTime   *time.Time
	FineAmount *float64
	UpdatedAt  time.Time
}
