package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// BookingRepository бронирования в памяти
type BookingRepository struct {
	store *Store
}

// Create вставляет бронирование, отклоняя пересечение с удерживающими место
// бронированиями того же места (аналог ограничения bookings_no_overlap)
func (r *BookingRepository) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	if b.Status.HoldsSpot() {
		for _, existing := range s.bookings {
			if existing.SpotID == b.SpotID && existing.HoldsSpot() && existing.Window.Overlaps(b.Window) {
				return nil, booking.ErrSpotUnavailable
			}
		}
	}

	now := s.now()
	b.Window.Date = domain.DateOnly(b.Window.Date)
	b.CreatedAt = now
	b.UpdatedAt = now
	s.bookings[b.ID] = copyBooking(b)

	return copyBooking(b), nil
}

// GetByID получает бронирование по ID
func (r *BookingRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	return copyBooking(b), nil
}

// GetWithFilter получает бронирования по фильтру с той же сортировкой, что и в PostgreSQL
func (r *BookingRepository) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		var buildingID uuid.UUID
		if spot, ok := s.spots[b.SpotID]; ok {
			buildingID = spot.BuildingID
		}
		if filter.Matches(b, buildingID) {
			result = append(result, copyBooking(b))
		}
	}

	if filter.Date != nil {
		sort.Slice(result, func(i, j int) bool {
			if result[i].Window.Start != result[j].Window.Start {
				return result[i].Window.Start.IsBefore(result[j].Window.Start)
			}
			return result[i].ID.String() < result[j].ID.String()
		})
	} else {
		sortNewestFirst(result)
	}

	return result, nil
}

// GetCurrentForUser возвращает активное бронирование пользователя, окно которого содержит at
func (r *BookingRepository) GetCurrentForUser(_ context.Context, userID uuid.UUID, date time.Time, at types.TimeString) (*domain.Booking, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var current *domain.Booking
	for _, b := range s.bookings {
		if b.UserID != userID || b.Status != domain.StatusActive || !domain.SameDay(b.Window.Date, date) {
			continue
		}
		if !b.Window.Contains(at) {
			continue
		}
		if current == nil || b.Window.Start.IsBefore(current.Window.Start) {
			current = b
		}
	}

	if current == nil {
		return nil, booking.ErrBookingNotFound
	}
	return copyBooking(current), nil
}

// ListOverdue возвращает активные бронирования, окно которых закончилось к моменту (date, at)
func (r *BookingRepository) ListOverdue(_ context.Context, date time.Time, at types.TimeString) ([]*domain.Booking, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	day := domain.DateOnly(date)
	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.Status != domain.StatusActive {
			continue
		}
		bookingDay := domain.DateOnly(b.Window.Date)
		if bookingDay.Before(day) || (bookingDay.Equal(day) && !at.IsBefore(b.Window.End)) {
			result = append(result, copyBooking(b))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Window.Date.Equal(result[j].Window.Date) {
			return result[i].Window.Date.Before(result[j].Window.Date)
		}
		return result[i].Window.End.IsBefore(result[j].Window.End)
	})

	return result, nil
}

// ApplyTransition применяет патч, только если бронирование все еще в состоянии from
func (r *BookingRepository) ApplyTransition(_ context.Context, id uuid.UUID, from, patch domain.BookingPatch) (*domain.Booking, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok || !b.Matches(from) {
		return nil, booking.ErrStatusChanged
	}

	updated := copyBooking(b)
	updated.Apply(patch)
	updated.UpdatedAt = s.now()
	s.bookings[id] = updated

	return copyBooking(updated), nil
}

func sortNewestFirst(bookings []*domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].Window.Date.Equal(bookings[j].Window.Date) {
			return bookings[i].Window.Date.After(bookings[j].Window.Date)
		}
		return bookings[i].Window.Start.IsAfter(bookings[j].Window.Start)
	})
}
