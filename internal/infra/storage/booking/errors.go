package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSpotUnavailable возвращается, когда вставка нарушает ограничение bookings_no_overlap
	ErrSpotUnavailable = errors.New("booking.repository: spot is already booked for this window")

	// ErrStatusChanged возвращается, когда бронирование изменилось между чтением и обновлением
	ErrStatusChanged = errors.New("booking.repository: booking changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
