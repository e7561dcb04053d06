package event_stream

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/events"
)

// Subscriber источник событий ленты изменений
type Subscriber interface {
	Subscribe(userID uuid.UUID, handler events.Handler) func()
	SubscribeAll(handler events.Handler) func()
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
