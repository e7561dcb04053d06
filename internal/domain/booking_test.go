package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooking_PlanFromActive(t *testing.T) {
	at := time.Date(2025, 6, 1, 9, 5, 0, 0, time.UTC)
	entered := at.Add(-time.Hour)

	tests := []struct {
		name       string
		entry      *time.Time
		event      BookingEvent
		wantStatus BookingStatus
		wantErr    bool
	}{
		{name: "cancel", event: EventCancel, wantStatus: StatusCancelled},
		{name: "expire", event: EventExpire, wantStatus: StatusExpired},
		{name: "fine", event: EventFine, wantStatus: StatusFined},
		{name: "entry keeps active", event: EventEntry, wantStatus: StatusActive},
		{name: "exit after entry completes", entry: &entered, event: EventExit, wantStatus: StatusCompleted},
		{name: "exit without entry", event: EventExit, wantErr: true},
		{name: "second entry", entry: &entered, event: EventEntry, wantErr: true},
		{name: "unknown event", event: BookingEvent("teleport"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: StatusActive, EntryTime: tt.entry}

			patch, err := b.Plan(tt.event, at, 10)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, patch.Status)
			assert.Equal(t, StatusActive, b.Status, "plan must not mutate the booking")
		})
	}
}

func TestBooking_PlanStampsTimes(t *testing.T) {
	at := time.Date(2025, 6, 1, 9, 5, 0, 0, time.UTC)
	b := &Booking{Status: StatusActive}

	patch, err := b.Plan(EventEntry, at, 0)
	require.NoError(t, err)
	require.NotNil(t, patch.EntryTime)
	assert.Equal(t, at, *patch.EntryTime)

	b.Apply(patch)
	exitAt := at.Add(50 * time.Minute)

	patch, err = b.Plan(EventExit, exitAt, 0)
	require.NoError(t, err)
	assert.Equal(t, at, *patch.EntryTime)
	assert.Equal(t, exitAt, *patch.ExitTime)
}

func TestBooking_PlanFine(t *testing.T) {
	b := &Booking{Status: StatusActive}

	patch, err := b.Plan(EventFine, time.Now(), 25)
	require.NoError(t, err)
	require.NotNil(t, patch.FineAmount)
	assert.Equal(t, 25.0, *patch.FineAmount)

	_, err = b.Plan(EventFine, time.Now(), 0)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestBooking_TerminalStatesAreFinal(t *testing.T) {
	events := []BookingEvent{EventCancel, EventExpire, EventFine, EventEntry, EventExit}
	entered := time.Now()

	for _, status := range TerminalStatuses {
		for _, event := range events {
			b := &Booking{Status: status, EntryTime: &entered}
			_, err := b.Plan(event, time.Now(), 10)
			assert.ErrorIs(t, err, ErrInvalidTransition, "status=%s event=%s", status, event)
		}
	}
}

func TestBookingStatus_Classification(t *testing.T) {
	assert.True(t, StatusActive.HoldsSpot())
	assert.True(t, StatusCompleted.HoldsSpot())
	assert.False(t, StatusCancelled.HoldsSpot())
	assert.False(t, StatusExpired.HoldsSpot())
	assert.False(t, StatusFined.HoldsSpot())

	assert.False(t, StatusActive.IsTerminal())
	for _, s := range TerminalStatuses {
		assert.True(t, s.IsTerminal())
	}
}

func TestParseBookingStatus(t *testing.T) {
	s, err := ParseBookingStatus("fined")
	require.NoError(t, err)
	assert.Equal(t, StatusFined, s)

	_, err = ParseBookingStatus("confirmed")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("admin")
	require.NoError(t, err)
	assert.True(t, r.IsAdmin())

	_, err = ParseRole("superuser")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestBooking_MatchesState(t *testing.T) {
	b := &Booking{Status: StatusActive}
	snapshot := b.State()
	assert.True(t, b.Matches(snapshot))

	at := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)
	patch, err := b.Plan(EventEntry, at, 0)
	require.NoError(t, err)
	b.Apply(patch)

	assert.False(t, b.Matches(snapshot))
	assert.True(t, b.Matches(BookingPatch{Status: StatusActive, EntryTime: &at}))

	other := at.Add(time.Second)
	assert.False(t, b.Matches(BookingPatch{Status: StatusActive, EntryTime: &other}))
}
