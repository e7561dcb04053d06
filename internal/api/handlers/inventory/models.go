package inventory

import (
	"github.com/google/uuid"
)

// SetSpotActiveRequest HTTP request model включения/выключения места
type SetSpotActiveRequest struct {
	IsActive *bool `json:"isActive"`
}

// GenerateSpotsRequest HTTP request model; здание берется из пути
type GenerateSpotsRequest struct {
	SpotTypeID uuid.UUID `json:"spotTypeId"`
	Count      int       `json:"count"`
}
