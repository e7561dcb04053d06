package get_available_spots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	buildingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/building"
)

// UseCase use case для получения доступности мест здания на окно
type UseCase struct {
	buildingRepo BuildingRepository
	spotRepo     SpotRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	buildingRepo BuildingRepository,
	spotRepo SpotRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		buildingRepo: buildingRepo,
		spotRepo:     spotRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (часовой пояс кампуса, тесты)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступности
// Места и бронирования читаются в одной read-only транзакции, поэтому проекция
// строится по согласованному снимку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSpots: user=%s, building=%s, date=%s, window=%s-%s",
		req.UserID, req.BuildingID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	window, err := validateRequest(req, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Warn("GetAvailableSpots: validation failed: %v", err)
		return nil, err
	}

	var availability []domain.SpotAvailability

	err = uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		// 2. Проверяем здание
		building, err := uc.buildingRepo.GetByID(txCtx, req.BuildingID)
		if err != nil {
			if errors.Is(err, buildingRepo.ErrBuildingNotFound) {
				uc.logger.Warn("GetAvailableSpots: building id=%s not found", req.BuildingID)
				return fmt.Errorf("%w: building %s not found", ErrInvalidInput, req.BuildingID)
			}
			uc.logger.Error("GetAvailableSpots: failed to get building id=%s: %v", req.BuildingID, err)
			return fmt.Errorf("%w: failed to get building: %w", ErrStoreUnavailable, err)
		}
		if !building.IsActive {
			uc.logger.Warn("GetAvailableSpots: building id=%s is inactive", req.BuildingID)
			return fmt.Errorf("%w: building %s is inactive", ErrInvalidInput, building.Code)
		}

		// 3. Активные места здания по возрастанию номера
		spots, err := uc.spotRepo.List(txCtx, domain.SpotsFilter{
			BuildingID: &req.BuildingID,
			SpotTypeID: req.SpotTypeID,
			OnlyActive: true,
		})
		if err != nil {
			uc.logger.Error("GetAvailableSpots: failed to list spots: %v", err)
			return fmt.Errorf("%w: failed to list spots: %w", ErrStoreUnavailable, err)
		}

		if len(spots) == 0 {
			availability = []domain.SpotAvailability{}
			return nil
		}

		// 4. Удерживающие места бронирования этого здания на дату
		bookings, err := uc.bookingRepo.GetWithFilter(txCtx, domain.BookingsFilter{
			BuildingID: &req.BuildingID,
			Date:       &window.Date,
			Statuses:   domain.HoldingStatuses,
		})
		if err != nil {
			uc.logger.Error("GetAvailableSpots: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrStoreUnavailable, err)
		}

		// 5. Проекция
		availability = project(spots, bookings, window)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrStoreUnavailable) {
			return nil, err
		}
		uc.logger.Error("GetAvailableSpots: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	resp := &Response{
		BuildingID: req.BuildingID,
		Date:       window.Date,
		StartTime:  window.Start,
		EndTime:    window.End,
		Spots:      make([]Spot, 0, len(availability)),
		TotalCount: len(availability),
	}
	for _, a := range availability {
		if a.Available {
			resp.AvailableCount++
		}
		resp.Spots = append(resp.Spots, Spot{
			ID:         a.Spot.ID,
			SpotNumber: a.Spot.SpotNumber,
			SpotTypeID: a.Spot.SpotTypeID,
			Available:  a.Available,
		})
	}

	uc.logger.Info("GetAvailableSpots: building=%s, %d/%d spots available", req.BuildingID, resp.AvailableCount, resp.TotalCount)
	return resp, nil
}
