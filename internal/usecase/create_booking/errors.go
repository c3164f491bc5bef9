package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInstructorNotFound возвращается, когда инструктор не найден
	ErrInstructorNotFound = errors.New("create_booking: instructor not found")

	// ErrInstructorInactive возвращается, когда инструктор не принимает бронирования
	ErrInstructorInactive = errors.New("create_booking: instructor is not active")

	// ErrRouteNotFound возвращается, когда маршрут не найден
	ErrRouteNotFound = errors.New("create_booking: route not found")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrSlotMismatch возвращается, когда слот не относится к указанным инструктору и маршруту
	ErrSlotMismatch = errors.New("create_booking: slot does not belong to instructor and route")

	// ErrSlotStarted возвращается, когда слот уже начался
	ErrSlotStarted = errors.New("create_booking: slot has already started")

	// ErrSlotFull возвращается, когда в слоте не хватает мест (или он закрыт)
	ErrSlotFull = errors.New("create_booking: slot is full")

	// ErrPriceMismatch возвращается, когда цена клиента не совпадает с серверной
	ErrPriceMismatch = errors.New("create_booking: price mismatch")

	// ErrIdempotencyKeyReused возвращается, когда ключ идемпотентности уже использован для другого слота
	ErrIdempotencyKeyReused = errors.New("create_booking: idempotency key reused with different request")

	// ErrBookingFailed возвращается, когда бронирование не сохранено, места возвращены в слот
	ErrBookingFailed = errors.New("create_booking: booking failed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
