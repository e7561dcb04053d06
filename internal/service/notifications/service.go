package notifications

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	notificationRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/notification"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-ParkingService/internal/service/notifications/models"
)

// Service сервис уведомлений пользователя
type Service struct {
	repo     NotificationRepository
	notifier Notifier
	logger   Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(repo NotificationRepository, notifier Notifier, logger Logger) *Service {
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

// List возвращает уведомления пользователя, новые первыми
func (s *Service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) (*models.NotificationListResponse, error) {
	items, err := s.repo.ListByUser(ctx, userID, unreadOnly)
	if err != nil {
		s.logger.Error("List: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &models.NotificationListResponse{Notifications: make([]models.NotificationResponse, 0, len(items))}
	for _, n := range items {
		if !n.IsRead {
			resp.UnreadCount++
		}
		resp.Notifications = append(resp.Notifications, *models.FromDomainNotification(n))
	}
	return resp, nil
}

// MarkRead отмечает уведомление прочитанным; чужое уведомление считается не найденным
func (s *Service) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	s.logger.Info("MarkRead: notification=%s, user=%s", id, userID)

	if err := s.repo.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
			return ErrNotificationNotFound
		}
		s.logger.Error("MarkRead: repository error for notification=%s: %v", id, err)
		return fmt.Errorf("%w: MarkRead - repository error: %v", ErrInternal, err)
	}
	return nil
}

// Send отправляет уведомление пользователю от имени администратора
func (s *Service) Send(ctx context.Context, req *models.SendNotificationRequest) (*models.NotificationResponse, error) {
	kind, err := domain.ParseNotificationKind(req.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.notifier.Notify(ctx, req.UserID, req.Title, req.Message, kind)
	if err != nil {
		if errors.Is(err, notifier.ErrInvalidNotification) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("%w: Send - %v", ErrInternal, err)
	}
	return models.FromDomainNotification(created), nil
}
