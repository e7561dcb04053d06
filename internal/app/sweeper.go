package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	transitionBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/transition_booking"
	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// OverdueBookings источник бронирований, окно которых уже закончилось
type OverdueBookings interface {
	ListOverdue(ctx context.Context, date time.Time, at types.TimeString) ([]*domain.Booking, error)
}

// Transitioner use case перехода статуса
type Transitioner interface {
	Execute(ctx context.Context, req *transitionBooking.Request) (*transitionBooking.Response, error)
}

// SweepResult итог одного прохода
type SweepResult struct {
	Expired int
	Fined   int
	Skipped int
	Failed  int
}

// Sweeper фоновая задача: истекшие бронирования без въезда переводятся в expired,
// бронирования с въездом и без выезда после end + grace получают штраф
type Sweeper struct {
	bookings     OverdueBookings
	transitioner Transitioner
	grace        time.Duration
	interval     time.Duration
	location     *time.Location
	now          func() time.Time
	logger       Logger

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSweeper создает фоновую задачу; location - часовой пояс кампуса
func NewSweeper(
	bookings OverdueBookings,
	transitioner Transitioner,
	interval time.Duration,
	grace time.Duration,
	location *time.Location,
	logger Logger,
) *Sweeper {
	if location == nil {
		location = time.Local
	}
	return &Sweeper{
		bookings:     bookings,
		transitioner: transitioner,
		grace:        grace,
		interval:     interval,
		location:     location,
		now:          time.Now,
		logger:       logger,
		stopChan:     make(chan struct{}),
	}
}

// Start запускает периодический проход; первый проход выполняется сразу
func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info("Sweeper: starting, interval=%s, grace=%s", s.interval, s.grace)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()
}

// Stop останавливает задачу и ждет завершения текущего прохода
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Sweeper: stopping")
		close(s.stopChan)
	})
	s.wg.Wait()
}

func (s *Sweeper) run(ctx context.Context) {
	s.Sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep(ctx)
		case <-s.stopChan:
			s.logger.Info("Sweeper: stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Sweeper: cancelled")
			return
		}
	}
}

// Sweep выполняет один проход
// Каждое бронирование переводится через тот же use case, что и запросы пользователей,
// поэтому гонка с ручным переходом заканчивается ErrInvalidTransition и пропуском
func (s *Sweeper) Sweep(ctx context.Context) SweepResult {
	var result SweepResult

	now := s.now().In(s.location)
	overdue, err := s.bookings.ListOverdue(ctx, domain.DateOnly(now), types.NewTimeString(now))
	if err != nil {
		s.logger.Error("Sweeper: failed to list overdue bookings: %v", err)
		return result
	}

	for _, b := range overdue {
		event, ok := s.decide(b, now)
		if !ok {
			result.Skipped++
			continue
		}

		_, err := s.transitioner.Execute(ctx, &transitionBooking.Request{
			BookingID: b.ID,
			Event:     event,
			Actor:     transitionBooking.SystemActor,
		})
		switch {
		case err == nil && event == domain.EventExpire:
			result.Expired++
		case err == nil:
			result.Fined++
		case errors.Is(err, transitionBooking.ErrInvalidTransition):
			result.Skipped++
		default:
			result.Failed++
			s.logger.Error("Sweeper: failed to %s booking id=%s: %v", event, b.ID, err)
		}
	}

	if result != (SweepResult{}) {
		s.logger.Info("Sweeper: expired=%d, fined=%d, skipped=%d, failed=%d",
			result.Expired, result.Fined, result.Skipped, result.Failed)
	}
	return result
}

// decide без въезда - expire; с въездом - fine, когда grace после конца окна истек
func (s *Sweeper) decide(b *domain.Booking, now time.Time) (domain.BookingEvent, bool) {
	if !b.HasEntered() {
		return domain.EventExpire, true
	}

	end, err := b.Window.End.On(b.Window.Date, s.location)
	if err != nil {
		s.logger.Warn("Sweeper: booking id=%s has invalid end time %q", b.ID, b.Window.End)
		return "", false
	}
	if now.Before(end.Add(s.grace)) {
		return "", false
	}
	return domain.EventFine, true
}
