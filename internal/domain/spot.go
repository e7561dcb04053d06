package domain

import (
	"time"

	"github.com/google/uuid"
)

// Building a campus location that owns parking spots
type Building struct {
	ID        uuid.UUID
	Code      string
	Name      string
	Location  *string
	IsActive  bool
	CreatedAt time.Time
}

// SpotType tag for a spot (regular, shaded, accessible, ...)
type SpotType struct {
	ID          uuid.UUID
	Name        string
	Description *string
	IsShaded    bool
	CreatedAt   time.Time
}

// Spot a single physical parking space, the unit of allocation
type Spot struct {
	ID         uuid.UUID
	BuildingID uuid.UUID
	SpotNumber int
	SpotTypeID uuid.UUID
	IsActive   bool
	CreatedAt  time.Time
}

// SpotsFilter narrows spot inventory queries
type SpotsFilter struct {
	BuildingID *uuid.UUID
	SpotTypeID *uuid.UUID
	OnlyActive bool
}

// Matches applies the filter to a spot
func (f SpotsFilter) Matches(s *Spot) bool {
	if f.BuildingID != nil && s.BuildingID != *f.BuildingID {
		return false
	}
	if f.SpotTypeID != nil && s.SpotTypeID != *f.SpotTypeID {
		return false
	}
	if f.OnlyActive && !s.IsActive {
		return false
	}
	return true
}

// SpotAvailability a spot annotated with its availability for a window
type SpotAvailability struct {
	Spot      *Spot
	Available bool
}
