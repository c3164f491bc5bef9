package pricing

import "errors"

var (
	// ErrInvalidParticipants возвращается, когда количество участников меньше одного
	ErrInvalidParticipants = errors.New("pricing: participants must be at least 1")

	// ErrNegativePrice возвращается, когда базовая цена отрицательна
	ErrNegativePrice = errors.New("pricing: base price must not be negative")
)
