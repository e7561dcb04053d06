package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модели

// CreateBuildingRequest запрос на создание здания
type CreateBuildingRequest struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Location *string `json:"location,omitempty"`
}

// UpdateBuildingRequest запрос на частичное обновление здания
type UpdateBuildingRequest struct {
	Name     *string `json:"name,omitempty"`
	Location *string `json:"location,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// CreateSpotTypeRequest запрос на создание типа места
type CreateSpotTypeRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	IsShaded    bool    `json:"isShaded"`
}

// ListSpotsRequest фильтр списка мест
type ListSpotsRequest struct {
	BuildingID *uuid.UUID `json:"buildingId,omitempty"`
	SpotTypeID *uuid.UUID `json:"spotTypeId,omitempty"`
	OnlyActive bool       `json:"onlyActive,omitempty"`
}

// CreateSpotRequest запрос на создание одного места
type CreateSpotRequest struct {
	BuildingID uuid.UUID `json:"buildingId"`
	SpotNumber int       `json:"spotNumber"`
	SpotTypeID uuid.UUID `json:"spotTypeId"`
}

// GenerateSpotsRequest запрос на массовое создание мест с номерами после последнего
type GenerateSpotsRequest struct {
	BuildingID uuid.UUID `json:"buildingId"`
	SpotTypeID uuid.UUID `json:"spotTypeId"`
	Count      int       `json:"count"`
}

// Response модели

// BuildingResponse ответ с данными здания
type BuildingResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Location  *string   `json:"location,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// SpotTypeResponse ответ с данными типа места
type SpotTypeResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	IsShaded    bool      `json:"isShaded"`
}

// SpotResponse ответ с данными места
type SpotResponse struct {
	ID         uuid.UUID `json:"id"`
	BuildingID uuid.UUID `json:"buildingId"`
	SpotNumber int       `json:"spotNumber"`
	SpotTypeID uuid.UUID `json:"spotTypeId"`
	IsActive   bool      `json:"isActive"`
}

// BuildingListResponse список зданий
type BuildingListResponse struct {
	Buildings []BuildingResponse `json:"buildings"`
}

// SpotTypeListResponse список типов мест
type SpotTypeListResponse struct {
	SpotTypes []SpotTypeResponse `json:"spotTypes"`
}

// SpotListResponse список мест
type SpotListResponse struct {
	Spots []SpotResponse `json:"spots"`
}

// Методы конвертации

func FromDomainBuilding(b *domain.Building) *BuildingResponse {
	return &BuildingResponse{
		ID:        b.ID,
		Code:      b.Code,
		Name:      b.Name,
		Location:  b.Location,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
	}
}

func FromDomainSpotType(st *domain.SpotType) *SpotTypeResponse {
	return &SpotTypeResponse{
		ID:          st.ID,
		Name:        st.Name,
		Description: st.Description,
		IsShaded:    st.IsShaded,
	}
}

func FromDomainSpot(s *domain.Spot) *SpotResponse {
	return &SpotResponse{
		ID:         s.ID,
		BuildingID: s.BuildingID,
		SpotNumber: s.SpotNumber,
		SpotTypeID: s.SpotTypeID,
		IsActive:   s.IsActive,
	}
}

func FromDomainSpotList(spots []*domain.Spot) *SpotListResponse {
	resp := &SpotListResponse{Spots: make([]SpotResponse, 0, len(spots))}
	for _, s := range spots {
		resp.Spots = append(resp.Spots, *FromDomainSpot(s))
	}
	return resp
}
