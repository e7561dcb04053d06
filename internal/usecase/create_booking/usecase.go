package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/events"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	buildingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/building"
	spotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/spot"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/qrcode"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	spotRepo     SpotRepository
	buildingRepo BuildingRepository
	qrEncoder    QREncoder
	publisher    Publisher
	metrics      Metrics
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// publisher и metrics могут быть nil
func NewUseCase(
	bookingRepo BookingRepository,
	spotRepo SpotRepository,
	buildingRepo BuildingRepository,
	qrEncoder QREncoder,
	publisher Publisher,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		spotRepo:     spotRepo,
		buildingRepo: buildingRepo,
		qrEncoder:    qrEncoder,
		publisher:    publisher,
		metrics:      metrics,
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

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию: строка места блокируется, пересечения
// перепроверяются в момент коммита, поэтому из двух конкурентных запросов на
// пересекающиеся окна побеждает ровно один
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, spot=%s, date=%s, window=%s-%s",
		req.UserID, req.SpotID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	resp, err := uc.execute(ctx, req)
	uc.observe(err)
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	window, err := validateRequest(req, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Готовим бронирование и QR-код до транзакции: payload зависит только от запроса и ID
	booking := &domain.Booking{
		ID:     uuid.New(),
		UserID: req.UserID,
		SpotID: req.SpotID,
		Window: window,
		Status: domain.StatusActive,
	}

	qr, err := uc.qrEncoder.Encode(qrcode.NewBookingQRData(booking))
	if err != nil {
		uc.logger.Error("CreateBooking: failed to generate QR code for booking id=%s: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to generate QR code: %v", ErrInternal, err)
	}
	booking.QRCode = ptr.Ptr(qr)

	var (
		result *domain.Booking
		spot   *domain.Spot
	)

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Блокируем место
		locked, err := uc.spotRepo.GetByID(txCtx, req.SpotID)
		if err != nil {
			if errors.Is(err, spotRepo.ErrSpotNotFound) {
				uc.logger.Warn("CreateBooking: spot id=%s not found", req.SpotID)
				return fmt.Errorf("%w: spot %s not found", ErrInvalidInput, req.SpotID)
			}
			uc.logger.Error("CreateBooking: failed to get spot id=%s: %v", req.SpotID, err)
			return fmt.Errorf("%w: failed to get spot: %w", ErrStoreUnavailable, err)
		}
		if !locked.IsActive {
			uc.logger.Warn("CreateBooking: spot id=%s is inactive", req.SpotID)
			return fmt.Errorf("%w: spot %s is inactive", ErrInvalidInput, req.SpotID)
		}
		spot = locked

		// 3.2. Здание места должно быть активным
		building, err := uc.buildingRepo.GetByID(txCtx, spot.BuildingID)
		if err != nil {
			if errors.Is(err, buildingRepo.ErrBuildingNotFound) {
				return fmt.Errorf("%w: building of spot %s not found", ErrInvalidInput, req.SpotID)
			}
			uc.logger.Error("CreateBooking: failed to get building id=%s: %v", spot.BuildingID, err)
			return fmt.Errorf("%w: failed to get building: %w", ErrStoreUnavailable, err)
		}
		if !building.IsActive {
			uc.logger.Warn("CreateBooking: building id=%s is inactive", building.ID)
			return fmt.Errorf("%w: building %s is inactive", ErrInvalidInput, building.Code)
		}

		// 3.3. Перепроверяем пересечения на момент коммита
		existing, err := uc.bookingRepo.GetWithFilter(txCtx, domain.BookingsFilter{
			SpotID:   &req.SpotID,
			Date:     &window.Date,
			Statuses: domain.HoldingStatuses,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrStoreUnavailable, err)
		}

		if conflict := findConflict(existing, window); conflict != nil {
			uc.logger.Warn("CreateBooking: spot id=%s is taken by booking id=%s (%s)",
				req.SpotID, conflict.ID, conflict.Window)
			return ErrSpotUnavailable
		}

		// 3.4. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSpotUnavailable) {
				uc.logger.Warn("CreateBooking: exclusion constraint rejected booking on spot id=%s", req.SpotID)
				return ErrSpotUnavailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrStoreUnavailable, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrSpotUnavailable) || errors.Is(err, ErrStoreUnavailable) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	if uc.publisher != nil {
		uc.publisher.Publish(events.NewBookingEvent(events.BookingCreated, result, result.CreatedAt))
	}

	// Конвертируем в response
	return &Response{
		ID:         result.ID,
		UserID:     result.UserID,
		SpotID:     result.SpotID,
		BuildingID: spot.BuildingID,
		SpotNumber: spot.SpotNumber,
		Date:       result.Window.Date,
		StartTime:  result.Window.Start,
		EndTime:    result.Window.End,
		Status:     string(result.Status),
		QRCode:     result.QRCode,
		CreatedAt:  result.CreatedAt,
		UpdatedAt:  result.UpdatedAt,
	}, nil
}

func (uc *UseCase) observe(err error) {
	if uc.metrics == nil {
		return
	}

	switch {
	case err == nil:
		uc.metrics.ObserveBookingCommit(OutcomeCreated)
	case errors.Is(err, ErrSpotUnavailable):
		uc.metrics.ObserveBookingCommit(OutcomeConflict)
	case errors.Is(err, ErrInvalidInput):
		uc.metrics.ObserveBookingCommit(OutcomeInvalid)
	default:
		uc.metrics.ObserveBookingCommit(OutcomeUnavailable)
	}
}
