package get_occupancy

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request запрос отчета; nil Date означает сегодня
type Request struct {
	Date *time.Time
}

// Response отчет о загрузке парковки на дату
type Response struct {
	Date      time.Time
	Overall   domain.OccupancyCounter
	Buildings []domain.BuildingOccupancy
	SpotTypes []domain.SpotTypeOccupancy
}
