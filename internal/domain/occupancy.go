package domain

import "github.com/google/uuid"

// OccupancyCounter total/occupied/available spot counts
type OccupancyCounter struct {
	Total     int
	Occupied  int
	Available int
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (c OccupancyCounter) OccupancyRate() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Occupied) / float64(c.Total) * 100
}

// BuildingOccupancy counters for one building
type BuildingOccupancy struct {
	BuildingID uuid.UUID
	Code       string
	Name       string
	OccupancyCounter
}

// SpotTypeOccupancy counters for one spot type
type SpotTypeOccupancy struct {
	SpotTypeID uuid.UUID
	Name       string
	IsShaded   bool
	OccupancyCounter
}
