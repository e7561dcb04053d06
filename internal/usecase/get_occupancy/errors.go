package get_occupancy

import "errors"

var (
	ErrStoreUnavailable = errors.New("get_occupancy: store unavailable")
)
