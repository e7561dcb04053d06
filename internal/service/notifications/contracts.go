package notifications

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// NotificationRepository интерфейс репозитория уведомлений
type NotificationRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
}

// Notifier интерфейс доставки уведомлений
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, title, message string, kind domain.NotificationKind) (*domain.Notification, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
