package get_available_spots

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	getAvailableSpots "github.com/m04kA/SMC-ParkingService/internal/usecase/get_available_spots"
	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	BuildingID     uuid.UUID      `json:"buildingId"`
	Date           string         `json:"date"`
	StartTime      string         `json:"startTime"`
	EndTime        string         `json:"endTime"`
	TotalCount     int            `json:"totalCount"`
	AvailableCount int            `json:"availableCount"`
	Spots          []SpotResponse `json:"spots"`
}

// SpotResponse место с признаком доступности
type SpotResponse struct {
	ID         uuid.UUID `json:"id"`
	SpotNumber int       `json:"spotNumber"`
	SpotTypeID uuid.UUID `json:"spotTypeId"`
	Available  bool      `json:"available"`
}

// ToUseCaseRequest формирует запрос к use case из query параметров
func ToUseCaseRequest(userID, buildingID uuid.UUID, dateStr, startStr, endStr string, spotTypeID *uuid.UUID) (*getAvailableSpots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	start, err := types.NewTimeStringFromString(startStr)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}

	end, err := types.NewTimeStringFromString(endStr)
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}

	return &getAvailableSpots.Request{
		UserID:     userID,
		BuildingID: buildingID,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
		SpotTypeID: spotTypeID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSpots.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		BuildingID:     resp.BuildingID,
		Date:           resp.Date.Format(domain.DateFormat),
		StartTime:      resp.StartTime.String(),
		EndTime:        resp.EndTime.String(),
		TotalCount:     resp.TotalCount,
		AvailableCount: resp.AvailableCount,
		Spots:          make([]SpotResponse, 0, len(resp.Spots)),
	}
	for _, s := range resp.Spots {
		out.Spots = append(out.Spots, SpotResponse{
			ID:         s.ID,
			SpotNumber: s.SpotNumber,
			SpotTypeID: s.SpotTypeID,
			Available:  s.Available,
		})
	}
	return out
}
