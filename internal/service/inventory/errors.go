package inventory

import "errors"

var (
	// ErrBuildingNotFound возвращается, когда здание не найдено
	ErrBuildingNotFound = errors.New("building not found")

	// ErrSpotTypeNotFound возвращается, когда тип места не найден
	ErrSpotTypeNotFound = errors.New("spot type not found")

	// ErrSpotNotFound возвращается, когда место не найдено
	ErrSpotNotFound = errors.New("spot not found")

	// ErrAlreadyExists возвращается при нарушении уникальности (код здания, имя типа, номер места)
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
