package get_occupancy

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// UseCase use case отчета о загрузке для панели администратора
type UseCase struct {
	buildingRepo BuildingRepository
	spotTypeRepo SpotTypeRepository
	spotRepo     SpotRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	buildingRepo BuildingRepository,
	spotTypeRepo SpotTypeRepository,
	spotRepo SpotRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		buildingRepo: buildingRepo,
		spotTypeRepo: spotTypeRepo,
		spotRepo:     spotRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute считает занятые места на дату: место занято, если на него есть
// активное бронирование в этот день. Учитываются только активные места
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	date := domain.DateOnly(uc.timeProvider.Now())
	if req != nil && req.Date != nil {
		date = domain.DateOnly(*req.Date)
	}

	uc.logger.Info("GetOccupancy: date=%s", date.Format(domain.DateFormat))

	var (
		buildings []*domain.Building
		spotTypes []*domain.SpotType
		spots     []*domain.Spot
		bookings  []*domain.Booking
	)

	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error

		if buildings, err = uc.buildingRepo.List(txCtx, false); err != nil {
			return fmt.Errorf("list buildings: %w", err)
		}
		if spotTypes, err = uc.spotTypeRepo.List(txCtx); err != nil {
			return fmt.Errorf("list spot types: %w", err)
		}
		if spots, err = uc.spotRepo.List(txCtx, domain.SpotsFilter{OnlyActive: true}); err != nil {
			return fmt.Errorf("list spots: %w", err)
		}
		if bookings, err = uc.bookingRepo.GetWithFilter(txCtx, domain.BookingsFilter{
			Date:     &date,
			Statuses: []domain.BookingStatus{domain.StatusActive},
		}); err != nil {
			return fmt.Errorf("get bookings: %w", err)
		}

		return nil
	})
	if err != nil {
		uc.logger.Error("GetOccupancy: date=%s - %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return aggregate(date, buildings, spotTypes, spots, bookings), nil
}

func aggregate(
	date time.Time,
	buildings []*domain.Building,
	spotTypes []*domain.SpotType,
	spots []*domain.Spot,
	bookings []*domain.Booking,
) *Response {
	occupied := make(map[uuid.UUID]bool, len(bookings))
	for _, b := range bookings {
		occupied[b.SpotID] = true
	}

	byBuilding := make(map[uuid.UUID]*domain.OccupancyCounter, len(buildings))
	byType := make(map[uuid.UUID]*domain.OccupancyCounter, len(spotTypes))
	var overall domain.OccupancyCounter

	for _, s := range spots {
		taken := occupied[s.ID]
		add(&overall, taken)

		if byBuilding[s.BuildingID] == nil {
			byBuilding[s.BuildingID] = &domain.OccupancyCounter{}
		}
		add(byBuilding[s.BuildingID], taken)

		if byType[s.SpotTypeID] == nil {
			byType[s.SpotTypeID] = &domain.OccupancyCounter{}
		}
		add(byType[s.SpotTypeID], taken)
	}

	resp := &Response{
		Date:      date,
		Overall:   overall,
		Buildings: make([]domain.BuildingOccupancy, 0, len(buildings)),
		SpotTypes: make([]domain.SpotTypeOccupancy, 0, len(spotTypes)),
	}
	for _, b := range buildings {
		bo := domain.BuildingOccupancy{BuildingID: b.ID, Code: b.Code, Name: b.Name}
		if c := byBuilding[b.ID]; c != nil {
			bo.OccupancyCounter = *c
		}
		resp.Buildings = append(resp.Buildings, bo)
	}
	for _, st := range spotTypes {
		so := domain.SpotTypeOccupancy{SpotTypeID: st.ID, Name: st.Name, IsShaded: st.IsShaded}
		if c := byType[st.ID]; c != nil {
			so.OccupancyCounter = *c
		}
		resp.SpotTypes = append(resp.SpotTypes, so)
	}

	return resp
}

func add(c *domain.OccupancyCounter, taken bool) {
	c.Total++
	if taken {
		c.Occupied++
	} else {
		c.Available++
	}
}
