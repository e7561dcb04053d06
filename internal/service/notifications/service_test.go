package notifications

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-ParkingService/internal/service/notifications/models"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

func newService() *Service {
	repo := memory.NewStore().Notifications()
	return NewService(repo, notifier.New(repo, nil, logger.NewNop()), logger.NewNop())
}

func TestSendListMarkRead(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	user := uuid.New()

	sent, err := svc.Send(ctx, &models.SendNotificationRequest{UserID: user, Title: "Maintenance", Message: "J2-A closes at 18:00", Type: "alert"})
	require.NoError(t, err)
	assert.Equal(t, "alert", sent.Type)

	_, err = svc.Send(ctx, &models.SendNotificationRequest{UserID: user, Title: "Welcome", Message: "Hello"})
	require.NoError(t, err)

	list, err := svc.List(ctx, user, false)
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 2)
	assert.Equal(t, 2, list.UnreadCount)

	// Чужой пользователь не может отметить уведомление
	assert.ErrorIs(t, svc.MarkRead(ctx, sent.ID, uuid.New()), ErrNotificationNotFound)
	require.NoError(t, svc.MarkRead(ctx, sent.ID, user))

	unread, err := svc.List(ctx, user, true)
	require.NoError(t, err)
	require.Len(t, unread.Notifications, 1)
	assert.Equal(t, "Welcome", unread.Notifications[0].Title)
}

func TestSend_InvalidInput(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Send(ctx, &models.SendNotificationRequest{UserID: uuid.New(), Title: "T", Message: "M", Type: "spam"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Send(ctx, &models.SendNotificationRequest{UserID: uuid.New(), Message: "M"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
