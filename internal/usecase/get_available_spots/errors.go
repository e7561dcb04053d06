package get_available_spots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном окне, дате в прошлом или неизвестном/неактивном здании
	ErrInvalidInput = errors.New("get_available_spots: invalid input data")

	// ErrStoreUnavailable возвращается, когда хранилище недоступно
	ErrStoreUnavailable = errors.New("get_available_spots: store unavailable")
)
