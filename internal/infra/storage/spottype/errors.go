package spottype

import "errors"

var (
	// ErrSpotTypeNotFound возвращается, когда тип места не найден
	ErrSpotTypeNotFound = errors.New("spottype.repository: spot type not found")

	// ErrDuplicateName возвращается при попытке создать тип с существующим именем
	ErrDuplicateName = errors.New("spottype.repository: spot type name already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("spottype.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("spottype.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("spottype.repository: failed to scan row")
)
