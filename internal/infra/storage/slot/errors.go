package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrCapacityExceeded возвращается, когда в слоте недостаточно свободных мест
	ErrCapacityExceeded = errors.New("slot.repository: not enough remaining capacity")

	// ErrSlotClosed возвращается, когда слот закрыт для бронирования
	ErrSlotClosed = errors.New("slot.repository: slot is closed")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
