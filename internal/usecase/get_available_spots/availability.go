package get_available_spots

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// project помечает каждое место признаком доступности на окно.
// Место доступно, если ни одно удерживающее его бронирование не пересекается с окном.
// Порядок мест сохраняется
func project(spots []*domain.Spot, bookings []*domain.Booking, window domain.TimeWindow) []domain.SpotAvailability {
	taken := make(map[uuid.UUID]bool, len(bookings))
	for _, b := range bookings {
		if b.HoldsSpot() && b.Window.Overlaps(window) {
			taken[b.SpotID] = true
		}
	}

	result := make([]domain.SpotAvailability, 0, len(spots))
	for _, s := range spots {
		result = append(result, domain.SpotAvailability{
			Spot:      s,
			Available: !taken[s.ID],
		})
	}
	return result
}
