package domain

// Ограничения бизнес-валидации
const (
	MinParticipants         = 1
	MaxParticipants         = 50
	MaxCustomerNameLength   = 100
	MaxMessengerLength      = 64
	MinRating               = 0.0
	MaxRating               = 5.0
	MaxRouteDurationMinutes = 24 * 60
)

// Значения по умолчанию для оценки погоды
const (
	// UnknownWeatherScore оценка, выставляемая при недоступном прогнозе (середина полосы Moderate)
	UnknownWeatherScore = 50

	GoodScoreThreshold     = 70
	ModerateScoreThreshold = 40
)

// Форматы времени
const (
	DateFormat     = "2006-01-02" // YYYY-MM-DD
	DateTimeFormat = "2006-01-02T15:04:05Z07:00"
)

// AllBookingStatuses список всех статусов бронирования
var AllBookingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
}
