package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/spot"
	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

var testDay = time.Date(2030, 3, 14, 0, 0, 0, 0, time.UTC)

func seedSpot(t *testing.T, s *Store) (*domain.Building, *domain.Spot) {
	t.Helper()
	ctx := context.Background()

	b, err := s.Buildings().Create(ctx, &domain.Building{Code: "J2", Name: "J2 Block", IsActive: true})
	require.NoError(t, err)

	sp, err := s.Spots().Create(ctx, &domain.Spot{BuildingID: b.ID, SpotNumber: 1, SpotTypeID: RegularSpotTypeID, IsActive: true})
	require.NoError(t, err)

	return b, sp
}

func activeBooking(spotID uuid.UUID, start, end string) *domain.Booking {
	return &domain.Booking{
		UserID: uuid.New(),
		SpotID: spotID,
		Window: domain.TimeWindow{Date: testDay, Start: types.TimeString(start), End: types.TimeString(end)},
		Status: domain.StatusActive,
	}
}

func TestBookingRepository_CreateRejectsOverlap(t *testing.T) {
	s := NewStore()
	_, sp := seedSpot(t, s)
	repo := s.Bookings()
	ctx := context.Background()

	_, err := repo.Create(ctx, activeBooking(sp.ID, "08:00", "10:00"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, activeBooking(sp.ID, "09:30", "11:00"))
	assert.ErrorIs(t, err, booking.ErrSpotUnavailable)

	_, err = repo.Create(ctx, activeBooking(sp.ID, "10:00", "11:00"))
	assert.NoError(t, err)
}

func TestBookingRepository_ReturnsCopies(t *testing.T) {
	s := NewStore()
	_, sp := seedSpot(t, s)
	repo := s.Bookings()
	ctx := context.Background()

	created, err := repo.Create(ctx, activeBooking(sp.ID, "08:00", "10:00"))
	require.NoError(t, err)

	created.Status = domain.StatusCancelled

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, got.Status)
}

func TestBookingRepository_ApplyTransition(t *testing.T) {
	s := NewStore()
	_, sp := seedSpot(t, s)
	repo := s.Bookings()
	ctx := context.Background()

	created, err := repo.Create(ctx, activeBooking(sp.ID, "08:00", "10:00"))
	require.NoError(t, err)

	updated, err := repo.ApplyTransition(ctx, created.ID, domain.BookingPatch{Status: domain.StatusActive}, domain.BookingPatch{Status: domain.StatusCancelled})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, updated.Status)

	_, err = repo.ApplyTransition(ctx, created.ID, domain.BookingPatch{Status: domain.StatusActive}, domain.BookingPatch{Status: domain.StatusExpired})
	assert.ErrorIs(t, err, booking.ErrStatusChanged)

	// Отмененное бронирование больше не держит место
	_, err = repo.Create(ctx, activeBooking(sp.ID, "08:00", "10:00"))
	assert.NoError(t, err)
}

func TestBookingRepository_ApplyTransitionRejectsStaleEntry(t *testing.T) {
	s := NewStore()
	_, sp := seedSpot(t, s)
	repo := s.Bookings()
	ctx := context.Background()

	created, err := repo.Create(ctx, activeBooking(sp.ID, "08:00", "10:00"))
	require.NoError(t, err)
	snapshot := created.State()

	first := time.Date(2030, 1, 1, 8, 5, 0, 0, time.UTC)
	firstPatch, err := created.Plan(domain.EventEntry, first, 0)
	require.NoError(t, err)
	secondPatch, err := created.Plan(domain.EventEntry, first.Add(time.Minute), 0)
	require.NoError(t, err)

	_, err = repo.ApplyTransition(ctx, created.ID, snapshot, firstPatch)
	require.NoError(t, err)

	// Второй въезд по тому же снимку проигрывает и не перезаписывает отметку
	_, err = repo.ApplyTransition(ctx, created.ID, snapshot, secondPatch)
	assert.ErrorIs(t, err, booking.ErrStatusChanged)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.EntryTime)
	assert.True(t, first.Equal(*got.EntryTime))
}

func TestBookingRepository_GetWithFilterOrdering(t *testing.T) {
	s := NewStore()
	b, sp := seedSpot(t, s)
	repo := s.Bookings()
	ctx := context.Background()

	for _, w := range [][2]string{{"14:00", "15:00"}, {"08:00", "09:00"}, {"11:00", "12:00"}} {
		_, err := repo.Create(ctx, activeBooking(sp.ID, w[0], w[1]))
		require.NoError(t, err)
	}

	day := testDay
	found, err := repo.GetWithFilter(ctx, domain.BookingsFilter{BuildingID: &b.ID, Date: &day})
	require.NoError(t, err)
	require.Len(t, found, 3)
	assert.Equal(t, types.TimeString("08:00"), found[0].Window.Start)
	assert.Equal(t, types.TimeString("14:00"), found[2].Window.Start)

	found, err = repo.GetWithFilter(ctx, domain.BookingsFilter{SpotID: &sp.ID})
	require.NoError(t, err)
	require.Len(t, found, 3)
	assert.Equal(t, types.TimeString("14:00"), found[0].Window.Start)
}

func TestBookingRepository_ListOverdue(t *testing.T) {
	s := NewStore()
	_, sp := seedSpot(t, s)
	repo := s.Bookings()
	ctx := context.Background()

	_, err := repo.Create(ctx, activeBooking(sp.ID, "08:00", "09:00"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, activeBooking(sp.ID, "09:00", "12:00"))
	require.NoError(t, err)

	overdue, err := repo.ListOverdue(ctx, testDay, "09:00")
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, types.TimeString("08:00"), overdue[0].Window.Start)

	overdue, err = repo.ListOverdue(ctx, testDay.AddDate(0, 0, 1), "00:00")
	require.NoError(t, err)
	assert.Len(t, overdue, 2)
}

func TestSpotRepository_CreateBatch(t *testing.T) {
	s := NewStore()
	b, _ := seedSpot(t, s)
	ctx := context.Background()

	_, err := s.Spots().CreateBatch(ctx, b.ID, RegularSpotTypeID, 1, 3)
	assert.ErrorIs(t, err, spot.ErrDuplicateNumber)

	created, err := s.Spots().CreateBatch(ctx, b.ID, ShadedSpotTypeID, 2, 3)
	require.NoError(t, err)
	assert.Len(t, created, 3)

	maxNumber, err := s.Spots().MaxSpotNumber(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, maxNumber)

	_, err = s.Spots().CreateBatch(ctx, uuid.New(), RegularSpotTypeID, 1, 1)
	assert.ErrorIs(t, err, spot.ErrInvalidReference)
}

func TestTxManager_SerializesAndAllowsNesting(t *testing.T) {
	tm := NewTxManager()
	ctx := context.Background()

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = tm.DoSerializable(ctx, func(ctx context.Context) error {
				n := atomic.AddInt32(&inside, 1)
				if n > atomic.LoadInt32(&maxInside) {
					atomic.StoreInt32(&maxInside, n)
				}
				err := tm.Do(ctx, func(context.Context) error { return nil })
				atomic.AddInt32(&inside, -1)
				return err
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
}
