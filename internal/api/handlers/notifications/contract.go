package notifications

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/service/notifications/models"
)

type NotificationService interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool) (*models.NotificationListResponse, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	Send(ctx context.Context, req *models.SendNotificationRequest) (*models.NotificationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
