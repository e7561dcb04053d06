package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    uuid.UUID        // ID пользователя (subject токена)
	SpotID    uuid.UUID        // ID парковочного места
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Начало окна, например "09:00"
	EndTime   types.TimeString // Конец окна (не включительно)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	SpotID     uuid.UUID
	BuildingID uuid.UUID
	SpotNumber int
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
	Status     string
	QRCode     *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
