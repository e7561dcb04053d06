package notifier

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/events"
)

// Notifier сохраняет уведомление в таблицу notifications и публикует его в ленту изменений
type Notifier struct {
	repo      NotificationRepository
	publisher Publisher
	logger    Logger
}

// New создает notifier; publisher может быть nil
func New(repo NotificationRepository, publisher Publisher, logger Logger) *Notifier {
	return &Notifier{repo: repo, publisher: publisher, logger: logger}
}

// Notify доставляет уведомление пользователю
func (n *Notifier) Notify(ctx context.Context, userID uuid.UUID, title, message string, kind domain.NotificationKind) (*domain.Notification, error) {
	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidNotification)
	}
	if title == "" || utf8.RuneCountInString(title) > domain.MaxNotificationTitleSize {
		return nil, fmt.Errorf("%w: title must be 1-%d characters", ErrInvalidNotification, domain.MaxNotificationTitleSize)
	}
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrInvalidNotification)
	}
	if kind == "" {
		kind = domain.NotificationInfo
	}

	created, err := n.repo.Create(ctx, &domain.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Kind:    kind,
	})
	if err != nil {
		n.logger.Error("Notify: user=%s, title=%q - failed to save: %v", userID, title, err)
		return nil, fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	if n.publisher != nil {
		n.publisher.Publish(events.NewNotificationEvent(created))
	}

	n.logger.Info("Notify: user=%s, kind=%s, notification=%s delivered", userID, kind, created.ID)
	return created, nil
}
