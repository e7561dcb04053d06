package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/service/inventory/models"
)

type InventoryService interface {
	ListBuildings(ctx context.Context, onlyActive bool) (*models.BuildingListResponse, error)
	CreateBuilding(ctx context.Context, req *models.CreateBuildingRequest) (*models.BuildingResponse, error)
	UpdateBuilding(ctx context.Context, id uuid.UUID, req *models.UpdateBuildingRequest) (*models.BuildingResponse, error)
	ListSpotTypes(ctx context.Context) (*models.SpotTypeListResponse, error)
	CreateSpotType(ctx context.Context, req *models.CreateSpotTypeRequest) (*models.SpotTypeResponse, error)
	ListSpots(ctx context.Context, req *models.ListSpotsRequest) (*models.SpotListResponse, error)
	CreateSpot(ctx context.Context, req *models.CreateSpotRequest) (*models.SpotResponse, error)
	SetSpotActive(ctx context.Context, id uuid.UUID, active bool) (*models.SpotResponse, error)
	GenerateSpots(ctx context.Context, req *models.GenerateSpotsRequest) (*models.SpotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
