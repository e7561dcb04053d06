package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

type realTimeProvider struct {
	location *time.Location
}

func (p realTimeProvider) Now() time.Time {
	if p.location == nil {
		return time.Now()
	}
	return time.Now().In(p.location)
}

// Service сервис для чтения бронирований
type Service struct {
	bookingRepo  BookingRepository
	spotRepo     SpotRepository
	buildingRepo BuildingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
// location - часовой пояс кампуса для определения текущего бронирования
func NewService(
	bookingRepo BookingRepository,
	spotRepo SpotRepository,
	buildingRepo BuildingRepository,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		spotRepo:     spotRepo,
		buildingRepo: buildingRepo,
		timeProvider: realTimeProvider{location: location},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID
// Пользователь видит только своё бронирование, администратор - любое
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID, role domain.Role) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != userID && !role.IsAdmin() {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	return newEnricher(s).booking(ctx, booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Сортировка: дата по убыванию, затем время начала по убыванию. Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s, status=%v", req.UserID, req.Status)

	filter := domain.BookingsFilter{UserID: &req.UserID}
	if req.Status != nil {
		status, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Statuses = []domain.BookingStatus{status}
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%s", len(bookings), req.UserID)
	return newEnricher(s).list(ctx, bookings), nil
}

// GetActiveBooking получает текущее бронирование пользователя:
// сегодняшнее, в статусе active, окно которого содержит текущее время
func (s *Service) GetActiveBooking(ctx context.Context, userID uuid.UUID) (*models.BookingResponse, error) {
	now := s.timeProvider.Now()
	s.logger.Info("GetActiveBooking: user=%s, at=%s", userID, now.Format(time.RFC3339))

	booking, err := s.bookingRepo.GetCurrentForUser(ctx, userID, domain.DateOnly(now), types.NewTimeString(now))
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrNoActiveBooking
		}
		s.logger.Error("GetActiveBooking: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: GetActiveBooking - repository error: %v", ErrInternal, err)
	}

	return newEnricher(s).booking(ctx, booking), nil
}

// GetAllBookings получает бронирования всех пользователей с фильтрацией
// Доступ проверяется на уровне маршрута (только администратор)
func (s *Service) GetAllBookings(ctx context.Context, req *models.GetAllBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetAllBookings: building=%v, date=%v, status=%v", req.BuildingID, req.Date, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetAllBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetAllBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAllBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllBookings: successfully fetched %d bookings", len(bookings))
	return newEnricher(s).list(ctx, bookings), nil
}

// enricher добавляет к бронированиям номер места и здание, кэшируя их в пределах запроса
// Ошибки чтения справочников не прерывают запрос: поля просто остаются пустыми
type enricher struct {
	s         *Service
	spots     map[uuid.UUID]*domain.Spot
	buildings map[uuid.UUID]*domain.Building
}

func newEnricher(s *Service) *enricher {
	return &enricher{
		s:         s,
		spots:     make(map[uuid.UUID]*domain.Spot),
		buildings: make(map[uuid.UUID]*domain.Building),
	}
}

func (e *enricher) booking(ctx context.Context, b *domain.Booking) *models.BookingResponse {
	spot := e.spot(ctx, b.SpotID)

	var building *domain.Building
	if spot != nil {
		building = e.building(ctx, spot.BuildingID)
	}

	return models.FromDomainBooking(b, spot, building)
}

func (e *enricher) list(ctx context.Context, bookings []*domain.Booking) *models.BookingListResponse {
	resp := &models.BookingListResponse{
		Bookings: make([]models.BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *e.booking(ctx, b))
	}
	return resp
}

func (e *enricher) spot(ctx context.Context, id uuid.UUID) *domain.Spot {
	if sp, ok := e.spots[id]; ok {
		return sp
	}
	sp, err := e.s.spotRepo.GetByID(ctx, id)
	if err != nil {
		e.s.logger.Warn("enrich: failed to get spot id=%s: %v", id, err)
		sp = nil
	}
	e.spots[id] = sp
	return sp
}

func (e *enricher) building(ctx context.Context, id uuid.UUID) *domain.Building {
	if b, ok := e.buildings[id]; ok {
		return b
	}
	b, err := e.s.buildingRepo.GetByID(ctx, id)
	if err != nil {
		e.s.logger.Warn("enrich: failed to get building id=%s: %v", id, err)
		b = nil
	}
	e.buildings[id] = b
	return b
}
