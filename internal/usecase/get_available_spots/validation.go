package get_available_spots

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// validateRequest валидирует запрос и возвращает окно
func validateRequest(req *Request, now time.Time) (domain.TimeWindow, error) {
	if req.BuildingID == uuid.Nil {
		return domain.TimeWindow{}, fmt.Errorf("%w: buildingId is required", ErrInvalidInput)
	}

	window, err := domain.NewTimeWindow(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return domain.TimeWindow{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if domain.IsDateInPast(window.Date, now) {
		return domain.TimeWindow{}, fmt.Errorf("%w: date %s is in the past", ErrInvalidInput, window.Date.Format(domain.DateFormat))
	}

	return window, nil
}
