package get_available_spots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// Request модель запроса доступности мест
type Request struct {
	UserID     uuid.UUID        // ID пользователя (для логирования, не влияет на результат)
	BuildingID uuid.UUID        // ID здания
	Date       time.Time        // Дата (без времени)
	StartTime  types.TimeString // Начало окна, включительно
	EndTime    types.TimeString // Конец окна, не включительно
	SpotTypeID *uuid.UUID       // Фильтр по типу места (опционально)
}

// Response все активные места здания с признаком доступности, по возрастанию номера
type Response struct {
	BuildingID     uuid.UUID
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	Spots          []Spot
	TotalCount     int
	AvailableCount int
}

// Spot место с признаком доступности на окно
type Spot struct {
	ID         uuid.UUID
	SpotNumber int
	SpotTypeID uuid.UUID
	Available  bool
}
