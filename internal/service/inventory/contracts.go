package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// BuildingRepository интерфейс репозитория зданий
type BuildingRepository interface {
	Create(ctx context.Context, building *domain.Building) (*domain.Building, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Building, error)
	List(ctx context.Context, onlyActive bool) ([]*domain.Building, error)
	Update(ctx context.Context, building *domain.Building) (*domain.Building, error)
}

// SpotTypeRepository интерфейс репозитория типов мест
type SpotTypeRepository interface {
	Create(ctx context.Context, spotType *domain.SpotType) (*domain.SpotType, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SpotType, error)
	List(ctx context.Context) ([]*domain.SpotType, error)
}

// SpotRepository интерфейс репозитория мест
type SpotRepository interface {
	Create(ctx context.Context, spot *domain.Spot) (*domain.Spot, error)
	CreateBatch(ctx context.Context, buildingID, spotTypeID uuid.UUID, from, count int) ([]*domain.Spot, error)
	List(ctx context.Context, filter domain.SpotsFilter) ([]*domain.Spot, error)
	MaxSpotNumber(ctx context.Context, buildingID uuid.UUID) (int, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*domain.Spot, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
