package transition_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/events"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var now = time.Date(2025, 6, 1, 9, 5, 0, 0, time.UTC)

type notifierMock struct {
	mock.Mock
}

func (m *notifierMock) Notify(ctx context.Context, userID uuid.UUID, title, message string, kind domain.NotificationKind) (*domain.Notification, error) {
	args := m.Called(ctx, userID, title, message, kind)
	n, _ := args.Get(0).(*domain.Notification)
	return n, args.Error(1)
}

type metricsMock struct {
	mock.Mock
}

func (m *metricsMock) ObserveTransition(event, status string) {
	m.Called(event, status)
}

type publisherMock struct {
	events []events.Event
}

func (p *publisherMock) Publish(e events.Event) {
	p.events = append(p.events, e)
}

type fixture struct {
	store     *memory.Store
	uc        *UseCase
	notifier  *notifierMock
	publisher *publisherMock
	owner     uuid.UUID
	booking   *domain.Booking
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	b, err := store.Buildings().Create(ctx, &domain.Building{Code: "J2-A", Name: "J2 Block A", IsActive: true})
	require.NoError(t, err)
	spots, err := store.Spots().CreateBatch(ctx, b.ID, memory.RegularSpotTypeID, 1, 1)
	require.NoError(t, err)

	owner := uuid.New()
	booking, err := store.Bookings().Create(ctx, &domain.Booking{
		UserID: owner,
		SpotID: spots[0].ID,
		Window: domain.TimeWindow{Date: domain.DateOnly(now), Start: types.TimeString("09:00"), End: types.TimeString("10:00")},
		Status: domain.StatusActive,
	})
	require.NoError(t, err)

	n := &notifierMock{}
	p := &publisherMock{}
	uc := NewUseCase(store.Bookings(), n, p, nil, memory.NewTxManager(), 0, logger.NewNop()).
		WithTimeProvider(fixedTime{now})

	return &fixture{store: store, uc: uc, notifier: n, publisher: p, owner: owner, booking: booking}
}

func (f *fixture) ownerActor() Actor {
	return Actor{UserID: f.owner, Role: domain.RoleUser}
}

func (f *fixture) run(event domain.BookingEvent, actor Actor) (*Response, error) {
	return f.uc.Execute(context.Background(), &Request{BookingID: f.booking.ID, Event: event, Actor: actor})
}

func TestExecute_Cancel(t *testing.T) {
	f := newFixture(t)

	resp, err := f.run(domain.EventCancel, f.ownerActor())
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.BookingUpdated, f.publisher.events[0].Type)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_EntryThenExit(t *testing.T) {
	f := newFixture(t)

	resp, err := f.run(domain.EventEntry, f.ownerActor())
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusActive), resp.Status)
	require.NotNil(t, resp.EntryTime)
	assert.True(t, now.Equal(*resp.EntryTime))

	// Повторный въезд запрещен
	_, err = f.run(domain.EventEntry, f.ownerActor())
	assert.ErrorIs(t, err, ErrInvalidTransition)

	exitAt := now.Add(50 * time.Minute)
	resp, err = f.uc.Execute(context.Background(), &Request{
		BookingID:   f.booking.ID,
		Event:       domain.EventExit,
		Actor:       f.ownerActor(),
		EffectiveAt: &exitAt,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	require.NotNil(t, resp.ExitTime)
	assert.True(t, exitAt.Equal(*resp.ExitTime))
}

func TestExecute_ExitWithoutEntry(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(domain.EventExit, f.ownerActor())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_TerminalStatesHaveNoTransitions(t *testing.T) {
	lifecycle := []domain.BookingEvent{
		domain.EventCancel, domain.EventExpire, domain.EventFine, domain.EventEntry, domain.EventExit,
	}

	for _, first := range []domain.BookingEvent{domain.EventCancel, domain.EventExpire, domain.EventFine} {
		t.Run(string(first), func(t *testing.T) {
			f := newFixture(t)
			f.notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(&domain.Notification{}, nil).Maybe()

			_, err := f.run(first, SystemActor)
			require.NoError(t, err)

			for _, next := range lifecycle {
				_, err := f.run(next, SystemActor)
				assert.ErrorIs(t, err, ErrInvalidTransition, "%s after %s", next, first)
			}
		})
	}
}

func TestExecute_FineUsesDefaultAmountAndNotifies(t *testing.T) {
	f := newFixture(t)
	f.notifier.On("Notify", mock.Anything, f.owner, "Parking Fine", mock.AnythingOfType("string"), domain.NotificationFine).
		Return(&domain.Notification{ID: uuid.New()}, nil).Once()

	resp, err := f.run(domain.EventFine, SystemActor)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusFined), resp.Status)
	require.NotNil(t, resp.FineAmount)
	assert.Equal(t, domain.DefaultFineAmount, *resp.FineAmount)
	f.notifier.AssertExpectations(t)
}

func TestExecute_FineNotificationFailureIsSwallowed(t *testing.T) {
	f := newFixture(t)
	f.notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("notifications table is gone"))

	resp, err := f.uc.Execute(context.Background(), &Request{
		BookingID:  f.booking.ID,
		Event:      domain.EventFine,
		Actor:      SystemActor,
		FineAmount: ptr.Ptr(25.0),
	})
	require.NoError(t, err)
	assert.Equal(t, 25.0, *resp.FineAmount)

	stored, err := f.store.Bookings().GetByID(context.Background(), f.booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFined, stored.Status)
}

func TestExecute_Authorization(t *testing.T) {
	stranger := Actor{UserID: uuid.New(), Role: domain.RoleUser}

	tests := []struct {
		name    string
		event   domain.BookingEvent
		actor   func(f *fixture) Actor
		wantErr error
	}{
		{"stranger cannot cancel", domain.EventCancel, func(*fixture) Actor { return stranger }, ErrAccessDenied},
		{"stranger cannot enter", domain.EventEntry, func(*fixture) Actor { return stranger }, ErrAccessDenied},
		{"owner cannot expire", domain.EventExpire, (*fixture).ownerActor, ErrAccessDenied},
		{"owner cannot fine", domain.EventFine, (*fixture).ownerActor, ErrAccessDenied},
		{"admin can cancel any booking", domain.EventCancel, func(*fixture) Actor {
			return Actor{UserID: uuid.New(), Role: domain.RoleAdmin}
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.run(tt.event, tt.actor(f))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *Request
	}{
		{"missing booking id", &Request{Event: domain.EventCancel, Actor: SystemActor}},
		{"unknown event", &Request{BookingID: f.booking.ID, Event: "teleport", Actor: SystemActor}},
		{"fine amount on cancel", &Request{BookingID: f.booking.ID, Event: domain.EventCancel, Actor: SystemActor, FineAmount: ptr.Ptr(5.0)}},
		{"negative fine", &Request{BookingID: f.booking.ID, Event: domain.EventFine, Actor: SystemActor, FineAmount: ptr.Ptr(-1.0)}},
		{"effective time on cancel", &Request{BookingID: f.booking.ID, Event: domain.EventCancel, Actor: SystemActor, EffectiveAt: ptr.Ptr(now)}},
		{"zero effective time", &Request{BookingID: f.booking.ID, Event: domain.EventEntry, Actor: SystemActor, EffectiveAt: &time.Time{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(ctx, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: uuid.New(), Event: domain.EventCancel, Actor: SystemActor})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_ConcurrentTransitionsHaveOneWinner(t *testing.T) {
	f := newFixture(t)
	f.notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.Notification{}, nil).Maybe()

	uc := NewUseCase(f.store.Bookings(), f.notifier, nil, nil, memory.NewTxManager(), 0, logger.NewNop()).
		WithTimeProvider(fixedTime{now})

	const workers = 10
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		winners  int
		rejected int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			event := domain.EventCancel
			if i%2 == 1 {
				event = domain.EventExpire
			}
			_, err := uc.Execute(context.Background(), &Request{BookingID: f.booking.ID, Event: event, Actor: SystemActor})

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				winners++
			} else if errors.Is(err, ErrInvalidTransition) {
				rejected++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
	assert.Equal(t, workers-1, rejected)
}

func TestExecute_ObservesMetrics(t *testing.T) {
	f := newFixture(t)
	m := &metricsMock{}
	m.On("ObserveTransition", "cancel", "cancelled").Once()

	uc := NewUseCase(f.store.Bookings(), nil, nil, m, memory.NewTxManager(), 0, logger.NewNop()).
		WithTimeProvider(fixedTime{now})

	_, err := uc.Execute(context.Background(), &Request{BookingID: f.booking.ID, Event: domain.EventCancel, Actor: f.ownerActor()})
	require.NoError(t, err)
	m.AssertExpectations(t)
}
