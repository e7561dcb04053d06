package transition_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/events"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
)

const fineNotificationTitle = "Parking Fine"

// UseCase use case для перехода статуса бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	notifier     Notifier
	publisher    Publisher
	metrics      Metrics
	txManager    TransactionManager
	timeProvider TimeProvider
	fineAmount   float64
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// notifier, publisher и metrics могут быть nil; fineAmount <= 0 означает сумму по умолчанию
func NewUseCase(
	bookingRepo BookingRepository,
	notifier Notifier,
	publisher Publisher,
	metrics Metrics,
	txManager TransactionManager,
	fineAmount float64,
	logger Logger,
) *UseCase {
	if fineAmount <= 0 {
		fineAmount = domain.DefaultFineAmount
	}

	return &UseCase{
		bookingRepo:  bookingRepo,
		notifier:     notifier,
		publisher:    publisher,
		metrics:      metrics,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		fineAmount:   fineAmount,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет переход статуса
// Обновление условно по прочитанному состоянию, поэтому из двух конкурентных
// переходов одного бронирования применяется только один
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionBooking: booking=%s, event=%s, actor=%s (%s)",
		req.BookingID, req.Event, req.Actor.UserID, req.Actor.Role)

	if req.BookingID == uuid.Nil {
		return nil, fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}
	if _, err := domain.ParseBookingEvent(string(req.Event)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	fineAmount := uc.fineAmount
	if req.FineAmount != nil {
		if req.Event != domain.EventFine {
			return nil, fmt.Errorf("%w: fine amount is only accepted for %s", ErrInvalidInput, domain.EventFine)
		}
		if *req.FineAmount <= 0 {
			return nil, fmt.Errorf("%w: fine amount must be positive", ErrInvalidInput)
		}
		fineAmount = *req.FineAmount
	}

	at := uc.timeProvider.Now()
	if req.EffectiveAt != nil {
		if req.Event != domain.EventEntry && req.Event != domain.EventExit {
			return nil, fmt.Errorf("%w: effective time is only accepted for %s and %s", ErrInvalidInput, domain.EventEntry, domain.EventExit)
		}
		if req.EffectiveAt.IsZero() {
			return nil, fmt.Errorf("%w: effective time must be set", ErrInvalidInput)
		}
		at = *req.EffectiveAt
	}

	var updated *domain.Booking

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование
		current, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return fmt.Errorf("%w: id=%s", ErrBookingNotFound, req.BookingID)
			}
			uc.logger.Error("TransitionBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrStoreUnavailable, err)
		}

		// 2. Проверяем права
		if err := authorize(req.Actor, req.Event, current); err != nil {
			uc.logger.Warn("TransitionBooking: user=%s is not allowed to %s booking id=%s", req.Actor.UserID, req.Event, current.ID)
			return err
		}

		// 3. Считаем изменения по жизненному циклу
		patch, err := current.Plan(req.Event, at, fineAmount)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		}

		// 4. Условное обновление
		updated, err = uc.bookingRepo.ApplyTransition(txCtx, current.ID, current.State(), patch)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrStatusChanged) {
				return fmt.Errorf("%w: booking %s was changed concurrently", ErrInvalidTransition, current.ID)
			}
			uc.logger.Error("TransitionBooking: failed to update booking id=%s: %v", current.ID, err)
			return fmt.Errorf("%w: failed to update booking: %w", ErrStoreUnavailable, err)
		}

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidTransition):
			uc.logger.Warn("TransitionBooking: booking=%s, event=%s rejected: %v", req.BookingID, req.Event, err)
			return nil, err
		case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrAccessDenied), errors.Is(err, ErrStoreUnavailable):
			return nil, err
		}
		uc.logger.Error("TransitionBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	uc.logger.Info("TransitionBooking: booking id=%s is now %s", updated.ID, updated.Status)

	if uc.metrics != nil {
		uc.metrics.ObserveTransition(string(req.Event), string(updated.Status))
	}
	if uc.publisher != nil {
		uc.publisher.Publish(events.NewBookingEvent(events.BookingUpdated, updated, updated.UpdatedAt))
	}
	if req.Event == domain.EventFine {
		uc.notifyFine(ctx, updated)
	}

	return toResponse(updated), nil
}

// notifyFine отправляет уведомление о штрафе; ошибки только логируются
func (uc *UseCase) notifyFine(ctx context.Context, b *domain.Booking) {
	if uc.notifier == nil || b.FineAmount == nil {
		return
	}

	message := fmt.Sprintf("You have been fined %.2f AED for not exiting the parking properly.", *b.FineAmount)
	if _, err := uc.notifier.Notify(ctx, b.UserID, fineNotificationTitle, message, domain.NotificationFine); err != nil {
		uc.logger.Warn("TransitionBooking: failed to notify user=%s about fine on booking id=%s: %v", b.UserID, b.ID, err)
	}
}

// authorize владелец может отменить бронирование и отметить въезд/выезд,
// expire и fine доступны только администратору
func authorize(actor Actor, event domain.BookingEvent, b *domain.Booking) error {
	if actor.Role.IsAdmin() {
		return nil
	}

	switch event {
	case domain.EventCancel, domain.EventEntry, domain.EventExit:
		if b.UserID == actor.UserID {
			return nil
		}
		return fmt.Errorf("%w: booking belongs to another user", ErrAccessDenied)
	default:
		return fmt.Errorf("%w: %s requires admin role", ErrAccessDenied, event)
	}
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:         b.ID,
		UserID:     b.UserID,
		SpotID:     b.SpotID,
		Date:       b.Window.Date,
		StartTime:  b.Window.Start,
		EndTime:    b.Window.End,
		Status:     string(b.Status),
		EntryTime:  b.EntryTime,
		ExitTime:   b.ExitTime,
		FineAmount: b.FineAmount,
		UpdatedAt:  b.UpdatedAt,
	}
}
