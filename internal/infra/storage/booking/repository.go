package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

const (
	tableName = "bookings"

	pqExclusionViolation = "23P01"
)

var columns = []string{
	"id",
	"user_id",
	"spot_id",
	"date",
	"start_time",
	"end_time",
	"status",
	"entry_time",
	"exit_time",
	"fine_amount",
	"qr_code",
	"created_at",
	"updated_at",
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// ID бронирования генерируется вызывающей стороной (он входит в QR payload)
// Если в контексте передана активная транзакция, использует её.
// Нарушение ограничения bookings_no_overlap возвращается как ErrSpotUnavailable
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"id",
			"user_id",
			"spot_id",
			"date",
			"start_time",
			"end_time",
			"status",
			"qr_code",
		).
		Values(
			booking.ID,
			booking.UserID,
			booking.SpotID,
			booking.Window.Date,
			booking.Window.Start,
			booking.Window.End,
			booking.Status,
			booking.QRCode,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqExclusionViolation {
			return nil, ErrSpotUnavailable
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetWithFilter получает бронирования с гибкой фильтрацией
// Поддерживает фильтрацию по:
// - пользователю (UserID)
// - месту (SpotID) или зданию (BuildingID, через parking_spots)
// - дате (Date)
// - набору статусов (Statuses)
//
// Для конкретной даты сортирует по времени начала (ASC), иначе - сначала новые.
// Внутри транзакции запрос по конкретному месту и дате берет FOR UPDATE
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(tableName)

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.SpotID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"spot_id": *filter.SpotID})
	}
	if filter.BuildingID != nil {
		selectBuilder = selectBuilder.Where(
			squirrel.Expr("spot_id IN (SELECT id FROM parking_spots WHERE building_id = ?)", *filter.BuildingID),
		)
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"date": domain.DateOnly(*filter.Date)})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statuses})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("start_time ASC", "id ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("date DESC", "start_time DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && filter.SpotID != nil && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetCurrentForUser возвращает активное бронирование пользователя, окно которого содержит время at
func (r *Repository) GetCurrentForUser(ctx context.Context, userID uuid.UUID, date time.Time, at types.TimeString) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Eq{"date": domain.DateOnly(date)}).
		Where(squirrel.Eq{"status": string(domain.StatusActive)}).
		Where(squirrel.LtOrEq{"start_time": at}).
		Where(squirrel.Gt{"end_time": at}).
		OrderBy("start_time ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCurrentForUser - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCurrentForUser - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// ListOverdue возвращает активные бронирования, окно которых закончилось к моменту (date, at)
// Используется фоновой задачей истечения бронирований
func (r *Repository) ListOverdue(ctx context.Context, date time.Time, at types.TimeString) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	day := domain.DateOnly(date)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"status": string(domain.StatusActive)}).
		Where(squirrel.Or{
			squirrel.Lt{"date": day},
			squirrel.And{
				squirrel.Eq{"date": day},
				squirrel.LtOrEq{"end_time": at},
			},
		}).
		OrderBy("date ASC", "end_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOverdue - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverdue - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ApplyTransition применяет патч, только если строка все еще в состоянии from:
// совпадают статус, отметки въезда и выезда и штраф.
// Условный UPDATE не дает двум конкурентным переходам выиграть одновременно
func (r *Repository) ApplyTransition(ctx context.Context, id uuid.UUID, from, patch domain.BookingPatch) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", patch.Status).
		Set("entry_time", patch.EntryTime).
		Set("exit_time", patch.ExitTime).
		Set("fine_amount", patch.FineAmount).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from.Status}).
		Where(squirrel.Expr("entry_time IS NOT DISTINCT FROM ?", from.EntryTime)).
		Where(squirrel.Expr("exit_time IS NOT DISTINCT FROM ?", from.ExitTime)).
		Where(squirrel.Expr("fine_amount IS NOT DISTINCT FROM ?", from.FineAmount)).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ApplyTransition - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrStatusChanged
	}
	if err != nil {
		return nil, fmt.Errorf("%w: ApplyTransition - execute update: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// scanBooking сканирует одну строку в доменную модель
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.SpotID,
		&booking.Window.Date,
		&booking.Window.Start,
		&booking.Window.End,
		&booking.Status,
		&booking.EntryTime,
		&booking.ExitTime,
		&booking.FineAmount,
		&booking.QRCode,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Window.Date = domain.DateOnly(booking.Window.Date)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
