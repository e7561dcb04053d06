package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var now = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

type fixture struct {
	store    *memory.Store
	svc      *Service
	building *domain.Building
	spot     *domain.Spot
	owner    uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	b, err := store.Buildings().Create(ctx, &domain.Building{Code: "J2-A", Name: "J2 Block A", IsActive: true})
	require.NoError(t, err)
	spots, err := store.Spots().CreateBatch(ctx, b.ID, memory.RegularSpotTypeID, 7, 1)
	require.NoError(t, err)

	svc := NewService(store.Bookings(), store.Spots(), store.Buildings(), time.UTC, logger.NewNop()).
		WithTimeProvider(fixedTime{now})

	return &fixture{store: store, svc: svc, building: b, spot: spots[0], owner: uuid.New()}
}

func (f *fixture) book(t *testing.T, userID uuid.UUID, day time.Time, start, end string, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	b, err := f.store.Bookings().Create(context.Background(), &domain.Booking{
		UserID: userID,
		SpotID: f.spot.ID,
		Window: domain.TimeWindow{Date: day, Start: types.TimeString(start), End: types.TimeString(end)},
		Status: status,
	})
	require.NoError(t, err)
	return b
}

func TestGetByID_OwnerAndAdmin(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, f.owner, domain.DateOnly(now), "09:00", "10:00", domain.StatusActive)
	ctx := context.Background()

	resp, err := f.svc.GetByID(ctx, b.ID, f.owner, domain.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", resp.Date)
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Equal(t, 7, resp.SpotNumber)
	assert.Equal(t, "J2-A", resp.BuildingCode)
	require.NotNil(t, resp.BuildingID)
	assert.Equal(t, f.building.ID, *resp.BuildingID)

	_, err = f.svc.GetByID(ctx, b.ID, uuid.New(), domain.RoleUser)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetByID(ctx, b.ID, uuid.New(), domain.RoleAdmin)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(ctx, uuid.New(), f.owner, domain.RoleUser)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_SortedAndFiltered(t *testing.T) {
	f := newFixture(t)
	day := domain.DateOnly(now)

	f.book(t, f.owner, day, "08:00", "09:00", domain.StatusCompleted)
	f.book(t, f.owner, day, "11:00", "12:00", domain.StatusActive)
	f.book(t, f.owner, day.AddDate(0, 0, 1), "08:00", "09:00", domain.StatusActive)
	f.book(t, uuid.New(), day, "13:00", "14:00", domain.StatusActive)

	resp, err := f.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: f.owner})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 3)
	assert.Equal(t, "2025-06-02", resp.Bookings[0].Date)
	assert.Equal(t, "11:00", resp.Bookings[1].StartTime)
	assert.Equal(t, "08:00", resp.Bookings[2].StartTime)

	resp, err = f.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: f.owner,
		Status: ptr.Ptr("completed"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = f.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: f.owner,
		Status: ptr.Ptr("pending"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetActiveBooking(t *testing.T) {
	f := newFixture(t)
	day := domain.DateOnly(now)

	_, err := f.svc.GetActiveBooking(context.Background(), f.owner)
	assert.ErrorIs(t, err, ErrNoActiveBooking)

	// Закончилось до текущего момента
	f.book(t, f.owner, day, "08:00", "09:00", domain.StatusActive)
	_, err = f.svc.GetActiveBooking(context.Background(), f.owner)
	assert.ErrorIs(t, err, ErrNoActiveBooking)

	current := f.book(t, f.owner, day, "09:00", "10:00", domain.StatusActive)
	resp, err := f.svc.GetActiveBooking(context.Background(), f.owner)
	require.NoError(t, err)
	assert.Equal(t, current.ID, resp.ID)
}

func TestGetAllBookings(t *testing.T) {
	f := newFixture(t)
	day := domain.DateOnly(now)

	f.book(t, f.owner, day, "08:00", "09:00", domain.StatusCancelled)
	f.book(t, uuid.New(), day, "09:00", "10:00", domain.StatusActive)
	f.book(t, uuid.New(), day.AddDate(0, 0, 2), "09:00", "10:00", domain.StatusActive)

	resp, err := f.svc.GetAllBookings(context.Background(), &models.GetAllBookingsRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 3)

	resp, err = f.svc.GetAllBookings(context.Background(), &models.GetAllBookingsRequest{
		BuildingID: &f.building.ID,
		Date:       &day,
		Status:     ptr.Ptr("active"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = f.svc.GetAllBookings(context.Background(), &models.GetAllBookingsRequest{Status: ptr.Ptr("lost")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
