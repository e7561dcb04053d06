package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusActive    BookingStatus = "active"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusExpired   BookingStatus = "expired"
	StatusFined     BookingStatus = "fined"
)

// BookingEvent drives a status transition
type BookingEvent string

const (
	EventCancel BookingEvent = "cancel"
	EventExpire BookingEvent = "expire"
	EventFine   BookingEvent = "fine"
	EventEntry  BookingEvent = "entry"
	EventExit   BookingEvent = "exit"
)

// Booking binds one user to one spot for one TimeWindow
type Booking struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	SpotID     uuid.UUID
	Window     TimeWindow
	Status     BookingStatus
	EntryTime  *time.Time
	ExitTime   *time.Time
	FineAmount *float64
	QRCode     *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HoldsSpot returns true if the booking occupies its spot for the window
func (b *Booking) HoldsSpot() bool {
	return b.Status.HoldsSpot()
}

// IsTerminal returns true if no further transition is possible
func (b *Booking) IsTerminal() bool {
	return b.Status.IsTerminal()
}

// HasEntered returns true if an entry was recorded
func (b *Booking) HasEntered() bool {
	return b.EntryTime != nil
}

// BookingPatch is the set of columns changed by a transition.
// The same shape describes the state a transition expects to replace.
type BookingPatch struct {
	Status     BookingStatus
	EntryTime  *time.Time
	ExitTime   *time.Time
	FineAmount *float64
}

// HoldsSpot returns true for statuses that keep the physical spot reserved
func (s BookingStatus) HoldsSpot() bool {
	return s == StatusActive || s == StatusCompleted
}

// IsTerminal returns true for statuses with no outgoing transitions
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusExpired, StatusFined:
		return true
	default:
		return false
	}
}

// ParseBookingStatus validates a status string
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	for _, known := range AllStatuses {
		if status == known {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// ParseBookingEvent validates an event string
func ParseBookingEvent(s string) (BookingEvent, error) {
	switch e := BookingEvent(s); e {
	case EventCancel, EventExpire, EventFine, EventEntry, EventExit:
		return e, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEvent, s)
	}
}

// Plan computes the patch produced by applying event to b at time at.
// The booking itself is not modified.
//
//	active --cancel--> cancelled
//	active --expire--> expired
//	active --fine----> fined (fineAmount stored)
//	active --entry---> active (entry time stamped, once)
//	active --exit----> completed (requires entry, exit time stamped)
func (b *Booking) Plan(event BookingEvent, at time.Time, fineAmount float64) (BookingPatch, error) {
	if b.Status != StatusActive {
		return BookingPatch{}, fmt.Errorf("%w: booking is %s", ErrInvalidTransition, b.Status)
	}

	patch := b.State()

	switch event {
	case EventCancel:
		patch.Status = StatusCancelled
	case EventExpire:
		patch.Status = StatusExpired
	case EventFine:
		if fineAmount <= 0 {
			return BookingPatch{}, fmt.Errorf("%w: fine amount must be positive", ErrInvalidTransition)
		}
		patch.Status = StatusFined
		patch.FineAmount = &fineAmount
	case EventEntry:
		if b.HasEntered() {
			return BookingPatch{}, fmt.Errorf("%w: entry already recorded", ErrInvalidTransition)
		}
		patch.EntryTime = &at
	case EventExit:
		if !b.HasEntered() {
			return BookingPatch{}, fmt.Errorf("%w: exit without entry", ErrInvalidTransition)
		}
		patch.Status = StatusCompleted
		patch.ExitTime = &at
	default:
		return BookingPatch{}, fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}

	return patch, nil
}

// State returns the mutable columns of b as they are now
func (b *Booking) State() BookingPatch {
	return BookingPatch{
		Status:     b.Status,
		EntryTime:  b.EntryTime,
		ExitTime:   b.ExitTime,
		FineAmount: b.FineAmount,
	}
}

// Matches reports whether b is still in the state captured by from
func (b *Booking) Matches(from BookingPatch) bool {
	return b.Status == from.Status &&
		sameTime(b.EntryTime, from.EntryTime) &&
		sameTime(b.ExitTime, from.ExitTime) &&
		sameAmount(b.FineAmount, from.FineAmount)
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func sameAmount(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Apply copies the patch onto the booking
func (b *Booking) Apply(patch BookingPatch) {
	b.Status = patch.Status
	b.EntryTime = patch.EntryTime
	b.ExitTime = patch.ExitTime
	b.FineAmount = patch.FineAmount
}

// BookingsFilter narrows booking queries; nil fields are not applied
type BookingsFilter struct {
	UserID     *uuid.UUID
	SpotID     *uuid.UUID
	BuildingID *uuid.UUID
	Date       *time.Time
	Statuses   []BookingStatus
}

// Matches applies the filter to a booking whose spot belongs to buildingID
func (f BookingsFilter) Matches(b *Booking, buildingID uuid.UUID) bool {
	if f.UserID != nil && b.UserID != *f.UserID {
		return false
	}
	if f.SpotID != nil && b.SpotID != *f.SpotID {
		return false
	}
	if f.BuildingID != nil && buildingID != *f.BuildingID {
		return false
	}
	if f.Date != nil && !SameDay(b.Window.Date, *f.Date) {
		return false
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if b.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
