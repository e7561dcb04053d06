// Package events реализует внутрипроцессную ленту изменений: подписчики
// получают события о бронированиях и уведомлениях после коммита.
// Корректность сервиса не зависит от доставки.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Type тип события
type Type string

const (
	BookingCreated      Type = "booking.created"
	BookingUpdated      Type = "booking.updated"
	NotificationCreated Type = "notification.created"
)

// Event событие ленты изменений
type Event struct {
	Type       Type        `json:"type"`
	UserID     uuid.UUID   `json:"userId"`
	Payload    interface{} `json:"payload"`
	OccurredAt time.Time   `json:"occurredAt"`
}

// BookingPayload данные бронирования в событии
type BookingPayload struct {
	ID         uuid.UUID `json:"id"`
	SpotID     uuid.UUID `json:"spotId"`
	Date       string    `json:"date"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	Status     string    `json:"status"`
	FineAmount *float64  `json:"fineAmount,omitempty"`
}

// NotificationPayload данные уведомления в событии
type NotificationPayload struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Kind    string    `json:"type"`
}

// NewBookingEvent собирает событие по бронированию
func NewBookingEvent(t Type, b *domain.Booking, at time.Time) Event {
	return Event{
		Type:   t,
		UserID: b.UserID,
		Payload: BookingPayload{
			ID:         b.ID,
			SpotID:     b.SpotID,
			Date:       b.Window.Date.Format(domain.DateFormat),
			StartTime:  b.Window.Start.String(),
			EndTime:    b.Window.End.String(),
			Status:     string(b.Status),
			FineAmount: b.FineAmount,
		},
		OccurredAt: at,
	}
}

// NewNotificationEvent собирает событие по уведомлению
func NewNotificationEvent(n *domain.Notification) Event {
	return Event{
		Type:   NotificationCreated,
		UserID: n.UserID,
		Payload: NotificationPayload{
			ID:      n.ID,
			Title:   n.Title,
			Message: n.Message,
			Kind:    string(n.Kind),
		},
		OccurredAt: n.CreatedAt,
	}
}
