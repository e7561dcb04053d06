package domain

// Default configuration values
const (
	DefaultFineAmount        = 10.0
	DefaultSpotsPerBuilding  = 40
	DefaultFineGraceMinutes  = 15
	MaxSpotsPerBatch         = 500
	MaxBuildingCodeLength    = 16
	MaxBuildingNameLength    = 128
	MaxNotificationTitleSize = 128
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// HoldingStatuses statuses that keep a spot occupied for their window.
// Used by the availability projection and the commit re-check.
var HoldingStatuses = []BookingStatus{
	StatusActive,
	StatusCompleted,
}

// TerminalStatuses statuses without outgoing transitions
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusExpired,
	StatusFined,
}

// AllStatuses every known booking status
var AllStatuses = []BookingStatus{
	StatusActive,
	StatusCompleted,
	StatusCancelled,
	StatusExpired,
	StatusFined,
}
