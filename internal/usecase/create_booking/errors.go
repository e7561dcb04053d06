package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном окне, дате в прошлом, неизвестном или неактивном месте
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrSpotUnavailable возвращается, когда место уже занято на пересекающееся окно
	ErrSpotUnavailable = errors.New("create_booking: spot is not available for this window")

	// ErrStoreUnavailable возвращается, когда хранилище недоступно
	ErrStoreUnavailable = errors.New("create_booking: store unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase (генерация QR-кода)
	ErrInternal = errors.New("create_booking: internal error")
)

// Исходы коммита для метрик
const (
	OutcomeCreated     = "created"
	OutcomeConflict    = "conflict"
	OutcomeInvalid     = "invalid"
	OutcomeUnavailable = "store_unavailable"
)
