package get_occupancy

import (
	"math"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	getOccupancy "github.com/m04kA/SMC-ParkingService/internal/usecase/get_occupancy"
)

// CounterResponse счетчики загрузки
type CounterResponse struct {
	Total         int     `json:"total"`
	Occupied      int     `json:"occupied"`
	Available     int     `json:"available"`
	OccupancyRate float64 `json:"occupancyRate"` // проценты, два знака
}

// BuildingResponse загрузка здания
type BuildingResponse struct {
	BuildingID uuid.UUID `json:"buildingId"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	CounterResponse
}

// SpotTypeResponse загрузка по типу мест
type SpotTypeResponse struct {
	SpotTypeID uuid.UUID `json:"spotTypeId"`
	Name       string    `json:"name"`
	IsShaded   bool      `json:"isShaded"`
	CounterResponse
}

// OccupancyResponse HTTP response model
type OccupancyResponse struct {
	Date      string             `json:"date"`
	Overall   CounterResponse    `json:"overall"`
	Buildings []BuildingResponse `json:"buildings"`
	SpotTypes []SpotTypeResponse `json:"spotTypes"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getOccupancy.Response) *OccupancyResponse {
	out := &OccupancyResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		Overall:   fromCounter(resp.Overall),
		Buildings: make([]BuildingResponse, 0, len(resp.Buildings)),
		SpotTypes: make([]SpotTypeResponse, 0, len(resp.SpotTypes)),
	}
	for _, b := range resp.Buildings {
		out.Buildings = append(out.Buildings, BuildingResponse{
			BuildingID:      b.BuildingID,
			Code:            b.Code,
			Name:            b.Name,
			CounterResponse: fromCounter(b.OccupancyCounter),
		})
	}
	for _, st := range resp.SpotTypes {
		out.SpotTypes = append(out.SpotTypes, SpotTypeResponse{
			SpotTypeID:      st.SpotTypeID,
			Name:            st.Name,
			IsShaded:        st.IsShaded,
			CounterResponse: fromCounter(st.OccupancyCounter),
		})
	}
	return out
}

func fromCounter(c domain.OccupancyCounter) CounterResponse {
	return CounterResponse{
		Total:         c.Total,
		Occupied:      c.Occupied,
		Available:     c.Available,
		OccupancyRate: math.Round(c.OccupancyRate()*100) / 100,
	}
}
