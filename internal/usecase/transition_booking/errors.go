package transition_booking

import "errors"

var (
	ErrInvalidInput      = errors.New("transition_booking: invalid input")
	ErrBookingNotFound   = errors.New("transition_booking: booking not found")
	ErrAccessDenied      = errors.New("transition_booking: access denied")
	ErrInvalidTransition = errors.New("transition_booking: invalid transition")
	ErrStoreUnavailable  = errors.New("transition_booking: store unavailable")
)
