package spot

import "errors"

var (
	// ErrSpotNotFound возвращается, когда парковочное место не найдено
	ErrSpotNotFound = errors.New("spot.repository: spot not found")

	// ErrDuplicateNumber возвращается, когда номер места уже занят в здании
	ErrDuplicateNumber = errors.New("spot.repository: spot number already exists in building")

	// ErrInvalidReference возвращается, когда здание или тип места не существуют
	ErrInvalidReference = errors.New("spot.repository: building or spot type does not exist")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("spot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("spot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("spot.repository: failed to scan row")
)
