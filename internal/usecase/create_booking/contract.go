package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/events"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/qrcode"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// SpotRepository интерфейс репозитория мест. Внутри транзакции GetByID блокирует строку места
type SpotRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Spot, error)
}

// BuildingRepository интерфейс репозитория зданий
type BuildingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Building, error)
}

// QREncoder интерфейс генератора QR-кодов
type QREncoder interface {
	Encode(data qrcode.BookingQRData) (string, error)
}

// Publisher интерфейс ленты изменений
type Publisher interface {
	Publish(event events.Event)
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	ObserveBookingCommit(outcome string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени в часовом поясе кампуса
type RealTimeProvider struct {
	Location *time.Location
}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	if p.Location == nil {
		return time.Now()
	}
	return time.Now().In(p.Location)
}
