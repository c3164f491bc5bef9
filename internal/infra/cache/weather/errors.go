package weather

import "errors"

var (
	// ErrCacheMiss возвращается, когда значения нет в кэше
	ErrCacheMiss = errors.New("weather.cache: cache miss")

	// ErrCache возвращается при ошибке обращения к хранилищу кэша
	ErrCache = errors.New("weather.cache: storage error")
)
