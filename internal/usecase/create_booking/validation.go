package create_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// validateRequest валидирует входные данные запроса и возвращает окно
func validateRequest(req *Request, now time.Time) (domain.TimeWindow, error) {
	if req.UserID == uuid.Nil {
		return domain.TimeWindow{}, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	if req.SpotID == uuid.Nil {
		return domain.TimeWindow{}, fmt.Errorf("%w: spotId is required", ErrInvalidInput)
	}

	window, err := domain.NewTimeWindow(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return domain.TimeWindow{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Проверяем, что дата не в прошлом
	if domain.IsDateInPast(window.Date, now) {
		return domain.TimeWindow{}, fmt.Errorf("%w: date %s is in the past", ErrInvalidInput, window.Date.Format(domain.DateFormat))
	}

	// Сегодня нельзя забронировать окно, которое уже началось
	if domain.SameDay(window.Date, now) && window.Start.IsBefore(types.NewTimeString(now)) {
		return domain.TimeWindow{}, fmt.Errorf("%w: start time %s has already passed", ErrInvalidInput, window.Start)
	}

	return window, nil
}

// findConflict возвращает первое удерживающее место бронирование, пересекающееся с окном
func findConflict(bookings []*domain.Booking, window domain.TimeWindow) *domain.Booking {
	for _, b := range bookings {
		if b.HoldsSpot() && b.Window.Overlaps(window) {
			return b
		}
	}
	return nil
}
