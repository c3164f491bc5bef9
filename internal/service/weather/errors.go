package weather

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных параметрах запроса
	ErrInvalidInput = errors.New("weather: invalid input data")

	// ErrRouteNotFound возвращается, когда маршрут для определения точки не найден
	ErrRouteNotFound = errors.New("weather: route not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("weather: internal error")
)
