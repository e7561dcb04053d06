package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	GetCurrentForUser(ctx context.Context, userID uuid.UUID, date time.Time, at types.TimeString) (*domain.Booking, error)
}

// SpotRepository интерфейс репозитория мест
type SpotRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Spot, error)
}

// BuildingRepository интерфейс репозитория зданий
type BuildingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Building, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
