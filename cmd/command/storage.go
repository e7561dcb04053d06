package command

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-ParkingService/internal/app"
	"github.com/m04kA/SMC-ParkingService/internal/config"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	buildingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/building"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	notificationRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/notification"
	profileRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/profile"
	spotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/spot"
	spotTypeRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/spottype"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// Общие наборы методов PostgreSQL и in-memory репозиториев

type bookingStore interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	GetCurrentForUser(ctx context.Context, userID uuid.UUID, date time.Time, at types.TimeString) (*domain.Booking, error)
	ListOverdue(ctx context.Context, date time.Time, at types.TimeString) ([]*domain.Booking, error)
	ApplyTransition(ctx context.Context, id uuid.UUID, from, patch domain.BookingPatch) (*domain.Booking, error)
}

type buildingStore interface {
	Create(ctx context.Context, building *domain.Building) (*domain.Building, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Building, error)
	List(ctx context.Context, onlyActive bool) ([]*domain.Building, error)
	Update(ctx context.Context, building *domain.Building) (*domain.Building, error)
}

type spotTypeStore interface {
	Create(ctx context.Context, spotType *domain.SpotType) (*domain.SpotType, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SpotType, error)
	List(ctx context.Context) ([]*domain.SpotType, error)
}

type spotStore interface {
	Create(ctx context.Context, spot *domain.Spot) (*domain.Spot, error)
	CreateBatch(ctx context.Context, buildingID, spotTypeID uuid.UUID, from, count int) ([]*domain.Spot, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Spot, error)
	List(ctx context.Context, filter domain.SpotsFilter) ([]*domain.Spot, error)
	MaxSpotNumber(ctx context.Context, buildingID uuid.UUID) (int, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*domain.Spot, error)
}

type profileStore interface {
	Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	List(ctx context.Context) ([]*domain.Profile, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) (*domain.Profile, error)
}

type notificationStore interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage репозитории и менеджер транзакций выбранного драйвера
type storage struct {
	bookings      bookingStore
	buildings     buildingStore
	spotTypes     spotTypeStore
	spots         spotStore
	profiles      profileStore
	notifications notificationStore
	tx            txManager

	close func()
}

func newMemoryStorage() *storage {
	store := memory.NewStore()
	return &storage{
		bookings:      store.Bookings(),
		buildings:     store.Buildings(),
		spotTypes:     store.SpotTypes(),
		spots:         store.Spots(),
		profiles:      store.Profiles(),
		notifications: store.Notifications(),
		tx:            memory.NewTxManager(),
		close:         func() {},
	}
}

// newPostgresStorage открывает пул, при необходимости применяет миграции и
// оборачивает соединение сбором метрик. collector может быть nil
func newPostgresStorage(ctx context.Context, cfg *config.Config, collector *metrics.Metrics, log *logger.Logger) (*storage, error) {
	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		migrator, err := app.NewMigrator(db, log)
		if err != nil {
			db.Close()
			return nil, err
		}
		if err := migrator.Run(ctx); err != nil {
			db.Close()
			return nil, err
		}
	}

	stopMetricsCh := make(chan struct{})
	wrappedDB := dbmetrics.WrapWithDefault(db, collector, cfg.Metrics.ServiceName, stopMetricsCh)
	if collector != nil {
		log.Info("Database metrics collection started")
	}

	return &storage{
		bookings:      bookingRepo.NewRepository(wrappedDB),
		buildings:     buildingRepo.NewRepository(wrappedDB),
		spotTypes:     spotTypeRepo.NewRepository(wrappedDB),
		spots:         spotRepo.NewRepository(wrappedDB),
		profiles:      profileRepo.NewRepository(wrappedDB),
		notifications: notificationRepo.NewRepository(wrappedDB),
		tx:            txmanager.NewTransactionManager(wrappedDB),
		close: func() {
			close(stopMetricsCh)
			db.Close()
		},
	}, nil
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
