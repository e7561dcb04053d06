package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NotificationKind category of a user notification
type NotificationKind string

const (
	NotificationInfo    NotificationKind = "info"
	NotificationWarning NotificationKind = "warning"
	NotificationFine    NotificationKind = "fine"
	NotificationAlert   NotificationKind = "alert"
)

// Notification a message delivered to a user
type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Message   string
	Kind      NotificationKind
	IsRead    bool
	CreatedAt time.Time
}

// ParseNotificationKind validates a kind string; empty means info
func ParseNotificationKind(s string) (NotificationKind, error) {
	switch k := NotificationKind(s); k {
	case "":
		return NotificationInfo, nil
	case NotificationInfo, NotificationWarning, NotificationFine, NotificationAlert:
		return k, nil
	default:
		return "", fmt.Errorf("unknown notification kind %q", s)
	}
}
