package ledger

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("ledger: slot not found")

	// ErrCapacityExceeded возвращается, когда в слоте недостаточно мест на момент резерва
	ErrCapacityExceeded = errors.New("ledger: not enough remaining capacity")

	// ErrSlotClosed возвращается, когда слот закрыт для бронирования
	ErrSlotClosed = errors.New("ledger: slot is closed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("ledger: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("ledger: internal error")
)
