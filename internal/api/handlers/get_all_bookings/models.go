package get_all_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(r *http.Request) (*models.GetAllBookingsRequest, error) {
	buildingID, err := handlers.QueryUUID(r, "buildingId")
	if err != nil {
		return nil, err
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		return nil, err
	}

	return &models.GetAllBookingsRequest{
		BuildingID: buildingID,
		Date:       date,
		Status:     handlers.QueryString(r, "status"),
	}, nil
}
