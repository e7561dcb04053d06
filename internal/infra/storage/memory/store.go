// Package memory реализует хранилище в памяти с той же семантикой, что и
// PostgreSQL-репозитории: те же ошибки, та же сортировка, та же проверка
// пересечения бронирований при вставке. Используется драйвером "memory" и тестами.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// Идентификаторы справочных типов мест, совпадают с миграцией 00002
var (
	RegularSpotTypeID    = uuid.MustParse("7f8b1c52-0d0e-4b0a-9a3e-1a0c6c3b9d01")
	ShadedSpotTypeID     = uuid.MustParse("7f8b1c52-0d0e-4b0a-9a3e-1a0c6c3b9d02")
	AccessibleSpotTypeID = uuid.MustParse("7f8b1c52-0d0e-4b0a-9a3e-1a0c6c3b9d03")
)

// Store общее состояние всех репозиториев в памяти
type Store struct {
	mu sync.RWMutex

	buildings     map[uuid.UUID]*domain.Building
	spotTypes     map[uuid.UUID]*domain.SpotType
	spots         map[uuid.UUID]*domain.Spot
	bookings      map[uuid.UUID]*domain.Booking
	notifications map[uuid.UUID]*domain.Notification
	profiles      map[uuid.UUID]*domain.Profile

	now func() time.Time
}

// NewStore создает пустое хранилище со справочником типов мест
func NewStore() *Store {
	s := &Store{
		buildings:     make(map[uuid.UUID]*domain.Building),
		spotTypes:     make(map[uuid.UUID]*domain.SpotType),
		spots:         make(map[uuid.UUID]*domain.Spot),
		bookings:      make(map[uuid.UUID]*domain.Booking),
		notifications: make(map[uuid.UUID]*domain.Notification),
		profiles:      make(map[uuid.UUID]*domain.Profile),
		now:           time.Now,
	}

	created := s.now()
	for _, st := range []domain.SpotType{
		{ID: RegularSpotTypeID, Name: "regular", Description: ptr.Ptr("Open-air spot")},
		{ID: ShadedSpotTypeID, Name: "shaded", Description: ptr.Ptr("Covered spot"), IsShaded: true},
		{ID: AccessibleSpotTypeID, Name: "accessible", Description: ptr.Ptr("Wide spot close to the entrance"), IsShaded: true},
	} {
		st := st
		st.CreatedAt = created
		s.spotTypes[st.ID] = &st
	}

	return s
}

// Bookings репозиторий бронирований
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{store: s}
}

// Buildings репозиторий зданий
func (s *Store) Buildings() *BuildingRepository {
	return &BuildingRepository{store: s}
}

// SpotTypes репозиторий типов мест
func (s *Store) SpotTypes() *SpotTypeRepository {
	return &SpotTypeRepository{store: s}
}

// Spots репозиторий парковочных мест
func (s *Store) Spots() *SpotRepository {
	return &SpotRepository{store: s}
}

// Notifications репозиторий уведомлений
func (s *Store) Notifications() *NotificationRepository {
	return &NotificationRepository{store: s}
}

// Profiles репозиторий профилей
func (s *Store) Profiles() *ProfileRepository {
	return &ProfileRepository{store: s}
}

func copyBooking(b *domain.Booking) *domain.Booking {
	c := *b
	if b.EntryTime != nil {
		c.EntryTime = ptr.Ptr(*b.EntryTime)
	}
	if b.ExitTime != nil {
		c.ExitTime = ptr.Ptr(*b.ExitTime)
	}
	if b.FineAmount != nil {
		c.FineAmount = ptr.Ptr(*b.FineAmount)
	}
	if b.QRCode != nil {
		c.QRCode = ptr.Ptr(*b.QRCode)
	}
	return &c
}
