package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ParkingService/internal/service/inventory/models"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

func newService() *Service {
	store := memory.NewStore()
	return NewService(store.Buildings(), store.SpotTypes(), store.Spots(), memory.NewTxManager(), logger.NewNop())
}

func TestBuildings_CreateListToggle(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	b, err := svc.CreateBuilding(ctx, &models.CreateBuildingRequest{Code: " J2-B ", Name: "J2 Block B"})
	require.NoError(t, err)
	assert.Equal(t, "J2-B", b.Code)
	assert.True(t, b.IsActive)

	_, err = svc.CreateBuilding(ctx, &models.CreateBuildingRequest{Code: "J2-B", Name: "Duplicate"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, err = svc.CreateBuilding(ctx, &models.CreateBuildingRequest{Code: "J1", Name: "J1 Block"})
	require.NoError(t, err)

	updated, err := svc.UpdateBuilding(ctx, b.ID, &models.UpdateBuildingRequest{
		Name:     ptr.Ptr("J2 Block B (north)"),
		IsActive: ptr.Ptr(false),
	})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "J2 Block B (north)", updated.Name)

	active, err := svc.ListBuildings(ctx, true)
	require.NoError(t, err)
	require.Len(t, active.Buildings, 1)
	assert.Equal(t, "J1", active.Buildings[0].Code)

	all, err := svc.ListBuildings(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all.Buildings, 2)

	_, err = svc.UpdateBuilding(ctx, uuid.New(), &models.UpdateBuildingRequest{IsActive: ptr.Ptr(true)})
	assert.ErrorIs(t, err, ErrBuildingNotFound)
}

func TestBuildings_Validation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  *models.CreateBuildingRequest
	}{
		{"empty code", &models.CreateBuildingRequest{Code: " ", Name: "Block"}},
		{"long code", &models.CreateBuildingRequest{Code: "ABCDEFGHIJKLMNOPQ", Name: "Block"}},
		{"empty name", &models.CreateBuildingRequest{Code: "J3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateBuilding(ctx, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestSpotTypes(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	list, err := svc.ListSpotTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, list.SpotTypes, 3)

	created, err := svc.CreateSpotType(ctx, &models.CreateSpotTypeRequest{Name: "EV", IsShaded: true})
	require.NoError(t, err)
	assert.Equal(t, "ev", created.Name)

	_, err = svc.CreateSpotType(ctx, &models.CreateSpotTypeRequest{Name: "Regular"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, err = svc.CreateSpotType(ctx, &models.CreateSpotTypeRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSpots_CreateGenerateToggle(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	b, err := svc.CreateBuilding(ctx, &models.CreateBuildingRequest{Code: "J2-A", Name: "J2 Block A"})
	require.NoError(t, err)

	_, err = svc.CreateSpot(ctx, &models.CreateSpotRequest{BuildingID: b.ID, SpotNumber: 3, SpotTypeID: memory.AccessibleSpotTypeID})
	require.NoError(t, err)

	_, err = svc.CreateSpot(ctx, &models.CreateSpotRequest{BuildingID: b.ID, SpotNumber: 3, SpotTypeID: memory.RegularSpotTypeID})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, err = svc.CreateSpot(ctx, &models.CreateSpotRequest{BuildingID: b.ID, SpotNumber: 4, SpotTypeID: uuid.New()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Нумерация продолжается после максимального номера
	generated, err := svc.GenerateSpots(ctx, &models.GenerateSpotsRequest{
		BuildingID: b.ID, SpotTypeID: memory.RegularSpotTypeID, Count: domain.DefaultSpotsPerBuilding,
	})
	require.NoError(t, err)
	require.Len(t, generated.Spots, domain.DefaultSpotsPerBuilding)
	assert.Equal(t, 4, generated.Spots[0].SpotNumber)
	assert.Equal(t, 3+domain.DefaultSpotsPerBuilding, generated.Spots[len(generated.Spots)-1].SpotNumber)

	toggled, err := svc.SetSpotActive(ctx, generated.Spots[0].ID, false)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	active, err := svc.ListSpots(ctx, &models.ListSpotsRequest{BuildingID: &b.ID, OnlyActive: true})
	require.NoError(t, err)
	assert.Len(t, active.Spots, domain.DefaultSpotsPerBuilding)
	assert.Equal(t, 3, active.Spots[0].SpotNumber)

	_, err = svc.SetSpotActive(ctx, uuid.New(), true)
	assert.ErrorIs(t, err, ErrSpotNotFound)
}

func TestGenerateSpots_Validation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	b, err := svc.CreateBuilding(ctx, &models.CreateBuildingRequest{Code: "J2-A", Name: "J2 Block A"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		req     *models.GenerateSpotsRequest
		wantErr error
	}{
		{"zero count", &models.GenerateSpotsRequest{BuildingID: b.ID, SpotTypeID: memory.RegularSpotTypeID}, ErrInvalidInput},
		{"too many", &models.GenerateSpotsRequest{BuildingID: b.ID, SpotTypeID: memory.RegularSpotTypeID, Count: domain.MaxSpotsPerBatch + 1}, ErrInvalidInput},
		{"unknown building", &models.GenerateSpotsRequest{BuildingID: uuid.New(), SpotTypeID: memory.RegularSpotTypeID, Count: 1}, ErrBuildingNotFound},
		{"unknown type", &models.GenerateSpotsRequest{BuildingID: b.ID, SpotTypeID: uuid.New(), Count: 1}, ErrSpotTypeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GenerateSpots(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
