package spot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

const (
	tableName = "parking_spots"

	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

var columns = []string{"id", "building_id", "spot_number", "spot_type_id", "is_active", "created_at"}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Repository репозиторий парковочных мест
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мест
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает одно парковочное место
func (r *Repository) Create(ctx context.Context, spot *domain.Spot) (*domain.Spot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if spot.ID == uuid.Nil {
		spot.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("id", "building_id", "spot_number", "spot_type_id", "is_active").
		Values(spot.ID, spot.BuildingID, spot.SpotNumber, spot.SpotTypeID, spot.IsActive).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&spot.CreatedAt); err != nil {
		return nil, mapWriteError("Create", err)
	}

	return spot, nil
}

// CreateBatch создает count мест подряд, начиная с номера from, одним INSERT
func (r *Repository) CreateBatch(ctx context.Context, buildingID, spotTypeID uuid.UUID, from, count int) ([]*domain.Spot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert(tableName).
		Columns("id", "building_id", "spot_number", "spot_type_id", "is_active")

	for i := 0; i < count; i++ {
		insertBuilder = insertBuilder.Values(uuid.New(), buildingID, from+i, spotTypeID, true)
	}

	query, args, err := insertBuilder.
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapWriteError("CreateBatch", err)
	}
	defer rows.Close()

	spots, err := scanSpots(rows)
	if err != nil {
		return nil, mapWriteError("CreateBatch", err)
	}

	return spots, nil
}

// GetByID получает место по ID
// Внутри транзакции строка блокируется (FOR UPDATE): это сериализует
// конкурентные бронирования одного и того же места
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Spot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	spot, err := scanSpot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSpotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan spot: %w", ErrScanRow, err)
	}

	return spot, nil
}

// List возвращает места по фильтру, упорядоченные по зданию и номеру места
func (r *Repository) List(ctx context.Context, filter domain.SpotsFilter) ([]*domain.Spot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(tableName)

	if filter.BuildingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"building_id": *filter.BuildingID})
	}
	if filter.SpotTypeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"spot_type_id": *filter.SpotTypeID})
	}
	if filter.OnlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.OrderBy("building_id ASC", "spot_number ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSpots(rows)
}

// MaxSpotNumber возвращает максимальный номер места в здании (0, если мест нет)
func (r *Repository) MaxSpotNumber(ctx context.Context, buildingID uuid.UUID) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(MAX(spot_number), 0)").
		From(tableName).
		Where(squirrel.Eq{"building_id": buildingID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: MaxSpotNumber - build select query: %v", ErrBuildQuery, err)
	}

	var maxNumber int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&maxNumber); err != nil {
		return 0, fmt.Errorf("%w: MaxSpotNumber - scan: %w", ErrScanRow, err)
	}

	return maxNumber, nil
}

// SetActive включает или выключает место
func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, active bool) (*domain.Spot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("is_active", active).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	spot, err := scanSpot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSpotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: SetActive - execute update: %w", ErrExecQuery, err)
	}

	return spot, nil
}

func mapWriteError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return ErrDuplicateNumber
		case pqForeignKeyViolation:
			return ErrInvalidReference
		}
	}
	return fmt.Errorf("%w: %s - execute insert: %w", ErrExecQuery, op, err)
}

func scanSpot(row rowScanner) (*domain.Spot, error) {
	var spot domain.Spot
	err := row.Scan(
		&spot.ID,
		&spot.BuildingID,
		&spot.SpotNumber,
		&spot.SpotTypeID,
		&spot.IsActive,
		&spot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &spot, nil
}

func scanSpots(rows *sql.Rows) ([]*domain.Spot, error) {
	spots := make([]*domain.Spot, 0)

	for rows.Next() {
		spot, err := scanSpot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSpots - scan row: %w", ErrScanRow, err)
		}
		spots = append(spots, spot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSpots - rows error: %w", ErrScanRow, err)
	}

	return spots, nil
}
