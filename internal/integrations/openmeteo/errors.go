package openmeteo

import "errors"

var (
	// ErrUnavailable возвращается, когда Open-Meteo недоступен (сеть, таймаут, 5xx)
	ErrUnavailable = errors.New("openmeteo client: forecast provider unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе от провайдера
	ErrInvalidResponse = errors.New("openmeteo client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("openmeteo client: internal error")
)
