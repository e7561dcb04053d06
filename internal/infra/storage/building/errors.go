package building

import "errors"

var (
	// ErrBuildingNotFound возвращается, когда здание не найдено
	ErrBuildingNotFound = errors.New("building.repository: building not found")

	// ErrDuplicateCode возвращается при попытке создать здание с существующим кодом
	ErrDuplicateCode = errors.New("building.repository: building code already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("building.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("building.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("building.repository: failed to scan row")
)
