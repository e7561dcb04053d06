package spottype

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
	tableName = "spot_types"

	pqUniqueViolation = "23505"
)

var columns = []string{"id", "name", "description", "is_shaded", "created_at"}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Repository репозиторий справочника типов мест
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория типов мест
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый тип места
func (r *Repository) Create(ctx context.Context, spotType *domain.SpotType) (*domain.SpotType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if spotType.ID == uuid.Nil {
		spotType.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("id", "name", "description", "is_shaded").
		Values(spotType.ID, spotType.Name, spotType.Description, spotType.IsShaded).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&spotType.CreatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return spotType, nil
}

// GetByID получает тип места по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SpotType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	spotType, err := scanSpotType(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSpotTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan spot type: %w", ErrScanRow, err)
	}

	return spotType, nil
}

// List возвращает все типы мест
func (r *Repository) List(ctx context.Context) ([]*domain.SpotType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	spotTypes := make([]*domain.SpotType, 0)
	for rows.Next() {
		spotType, err := scanSpotType(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		spotTypes = append(spotTypes, spotType)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return spotTypes, nil
}

func scanSpotType(row rowScanner) (*domain.SpotType, error) {
	var spotType domain.SpotType
	err := row.Scan(
		&spotType.ID,
		&spotType.Name,
		&spotType.Description,
		&spotType.IsShaded,
		&spotType.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &spotType, nil
}
