package transition_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/events"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ApplyTransition(ctx context.Context, id uuid.UUID, from, patch domain.BookingPatch) (*domain.Booking, error)
}

// Notifier интерфейс доставки уведомлений
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, title, message string, kind domain.NotificationKind) (*domain.Notification, error)
}

// Publisher интерфейс ленты изменений
type Publisher interface {
	Publish(event events.Event)
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	ObserveTransition(event, status string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
