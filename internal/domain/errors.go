package domain

import "errors"

var (
	// ErrInvalidWindow is returned for malformed windows (bad format, start >= end)
	ErrInvalidWindow = errors.New("domain: invalid time window")

	// ErrInvalidTransition is returned for status changes the lifecycle does not allow
	ErrInvalidTransition = errors.New("domain: invalid status transition")

	// ErrUnknownStatus is returned when a status string is not part of the lifecycle
	ErrUnknownStatus = errors.New("domain: unknown booking status")

	// ErrUnknownEvent is returned when an event string is not a known lifecycle event
	ErrUnknownEvent = errors.New("domain: unknown booking event")

	// ErrUnknownRole is returned when a role string is not known
	ErrUnknownRole = errors.New("domain: unknown role")
)
