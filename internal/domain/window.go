package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// TimeWindow same-day reservation window [Start, End).
// End may be 24:00 to reserve until midnight.
type TimeWindow struct {
	Date  time.Time
	Start types.TimeString
	End   types.TimeString
}

// NewTimeWindow validates that both times are well-formed and Start < End
func NewTimeWindow(date time.Time, start, end types.TimeString) (TimeWindow, error) {
	w := TimeWindow{Date: DateOnly(date), Start: start, End: end}
	if err := w.Validate(); err != nil {
		return TimeWindow{}, err
	}
	return w, nil
}

// Validate checks the window invariant
func (w TimeWindow) Validate() error {
	if w.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidWindow)
	}
	if err := w.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidWindow, err)
	}
	if err := w.End.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidWindow, err)
	}
	if w.Start.IsEndOfDay() {
		return fmt.Errorf("%w: start cannot be %s", ErrInvalidWindow, types.EndOfDay)
	}
	if !w.Start.IsBefore(w.End) {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidWindow, w.Start, w.End)
	}
	return nil
}

// Overlaps reports whether the windows share at least one instant.
// Windows are half-open: one ending exactly when the other starts does not overlap.
// Windows on different dates never overlap.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	if !SameDay(w.Date, other.Date) {
		return false
	}
	return IntervalsOverlap(w.Start, w.End, other.Start, other.End)
}

// DurationMinutes returns the window length
func (w TimeWindow) DurationMinutes() int {
	start, _ := w.Start.Minutes()
	end, _ := w.End.Minutes()
	return end - start
}

// Contains reports whether the wall-clock time t falls inside [Start, End)
func (w TimeWindow) Contains(t types.TimeString) bool {
	return !t.IsBefore(w.Start) && t.IsBefore(w.End)
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("%s %s-%s", w.Date.Format(DateFormat), w.Start, w.End)
}

// IntervalsOverlap is the single overlap predicate: [s1,e1) and [s2,e2)
// overlap iff s1 < e2 && s2 < e1
func IntervalsOverlap(s1, e1, s2, e2 types.TimeString) bool {
	return s1.IsBefore(e2) && s2.IsBefore(e1)
}

// DateOnly truncates t to midnight keeping its calendar date
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether both times fall on the same calendar date
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsDateInPast reports whether date is strictly before the calendar date of now
func IsDateInPast(date, now time.Time) bool {
	return DateOnly(date).Before(DateOnly(now))
}
