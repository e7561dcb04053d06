package get_available_spots

import (
	"context"

	getAvailableSpots "github.com/m04kA/SMC-ParkingService/internal/usecase/get_available_spots"
)

type GetAvailableSpotsUseCase interface {
	Execute(ctx context.Context, req *getAvailableSpots.Request) (*getAvailableSpots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
