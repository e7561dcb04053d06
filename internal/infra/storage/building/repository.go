package building

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

const (
	tableName = "buildings"

	pqUniqueViolation = "23505"
)

var columns = []string{"id", "code", "name", "location", "is_active", "created_at"}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Repository репозиторий для работы со зданиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория зданий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое здание
func (r *Repository) Create(ctx context.Context, building *domain.Building) (*domain.Building, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if building.ID == uuid.Nil {
		building.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("id", "code", "name", "location", "is_active").
		Values(building.ID, building.Code, building.Name, building.Location, building.IsActive).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&building.CreatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, ErrDuplicateCode
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return building, nil
}

// GetByID получает здание по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Building, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	building, err := scanBuilding(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBuildingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan building: %w", ErrScanRow, err)
	}

	return building, nil
}

// List возвращает здания, отсортированные по коду
func (r *Repository) List(ctx context.Context, onlyActive bool) ([]*domain.Building, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(tableName)
	if onlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.OrderBy("code ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	buildings := make([]*domain.Building, 0)
	for rows.Next() {
		building, err := scanBuilding(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		buildings = append(buildings, building)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return buildings, nil
}

// Update обновляет название, расположение и активность здания
func (r *Repository) Update(ctx context.Context, building *domain.Building) (*domain.Building, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("name", building.Name).
		Set("location", building.Location).
		Set("is_active", building.IsActive).
		Where(squirrel.Eq{"id": building.ID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return nil, ErrBuildingNotFound
	}

	return r.GetByID(ctx, building.ID)
}

func scanBuilding(row rowScanner) (*domain.Building, error) {
	var building domain.Building
	err := row.Scan(
		&building.ID,
		&building.Code,
		&building.Name,
		&building.Location,
		&building.IsActive,
		&building.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &building, nil
}
