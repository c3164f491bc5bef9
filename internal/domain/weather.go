package domain

import "time"

// ConditionsLevel категория погодных условий
type ConditionsLevel string

const (
	ConditionsGood     ConditionsLevel = "Good"
	ConditionsModerate ConditionsLevel = "Moderate"
	ConditionsPoor     ConditionsLevel = "Poor"
)

// WeatherReading сырые показатели погоды в точке на конкретный час
type WeatherReading struct {
	Temperature   float64   // °C
	WindSpeed     float64   // м/с
	Precipitation float64   // мм
	CloudCover    int       // %
	At            time.Time // час прогноза
}

// ForecastHour час прогноза для момента at (UTC): ближайший час, при равенстве более ранний
func ForecastHour(at time.Time) time.Time {
	at = at.UTC()
	hour := at.Truncate(time.Hour)
	if at.Sub(hour) > 30*time.Minute {
		hour = hour.Add(time.Hour)
	}
	return hour
}

// SuggestedSlot альтернативный слот с прогнозируемой оценкой погоды
type SuggestedSlot struct {
	Slot            Slot
	Score           int
	ConditionsLevel ConditionsLevel
}

// WeatherObservation результат оценки погоды, не сохраняется
type WeatherObservation struct {
	Temperature     float64
	WindSpeed       float64
	Precipitation   float64
	CloudCover      int
	ConditionsLevel ConditionsLevel
	Score           int
	Explanation     string
	// Unknown true, если прогноз недоступен и оценка выставлена по умолчанию
	Unknown        bool
	Location       Location
	At             time.Time
	SuggestedSlots []SuggestedSlot
}
