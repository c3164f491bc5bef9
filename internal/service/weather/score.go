package weather

import (
	"fmt"
	"math"

	"github.com/m04kA/SUP-BookingService/internal/domain"
)

// Параметры шкалы оценки
const (
	maxScore = 100

	calmWindSpeed   = 4.0 // м/с, ниже штрафа нет
	windSafetyLimit = 8.0 // м/с, после него штраф растет круто
	windPenaltyMild = 5.0
	windPenaltyBase = 20.0
	windPenaltyHard = 12.0

	precipitationPenalty = 15.0 // за каждый мм

	coldForClouds   = 16.0 // °C, облачность учитывается только ниже
	cloudCoverRatio = 20.0

	coldLimit       = 12.0
	hotLimit        = 32.0
	coolLimit       = 16.0
	warmLimit       = 28.0
	tempPenaltyHard = 20.0
	tempPenaltyMild = 10.0
)

type factor int

const (
	factorNone factor = iota
	factorWind
	factorPrecipitation
	factorCloud
	factorTemperature
)

// Penalties штрафы по факторам
type Penalties struct {
	Wind          float64
	Precipitation float64
	Cloud         float64
	Temperature   float64
}

// Total суммарный штраф
func (p Penalties) Total() float64 {
	return p.Wind + p.Precipitation + p.Cloud + p.Temperature
}

func (p Penalties) dominant() factor {
	best, value := factorNone, 0.0
	for _, c := range []struct {
		f factor
		v float64
	}{
		{factorWind, p.Wind},
		{factorPrecipitation, p.Precipitation},
		{factorTemperature, p.Temperature},
		{factorCloud, p.Cloud},
	} {
		if c.v > value {
			best, value = c.f, c.v
		}
	}
	return best
}

// WindPenalty штраф за ветер: нет до 4 м/с, 5 за м/с до 8 м/с, затем 20 + 12 за каждый м/с сверх 8
func WindPenalty(speed float64) float64 {
	switch {
	case speed <= calmWindSpeed:
		return 0
	case speed <= windSafetyLimit:
		return (speed - calmWindSpeed) * windPenaltyMild
	default:
		return windPenaltyBase + (speed-windSafetyLimit)*windPenaltyHard
	}
}

// PrecipitationPenalty штраф 15 за каждый мм осадков
func PrecipitationPenalty(mm float64) float64 {
	if mm <= 0 {
		return 0
	}
	return mm * precipitationPenalty
}

// CloudPenalty штраф за облачность, только в прохладную погоду (0-5)
func CloudPenalty(cloudCover int, temperature float64) float64 {
	if temperature >= coldForClouds || cloudCover <= 0 {
		return 0
	}
	if cloudCover > 100 {
		cloudCover = 100
	}
	return float64(cloudCover) / cloudCoverRatio
}

// TemperaturePenalty штраф за некомфортную температуру
func TemperaturePenalty(temperature float64) float64 {
	switch {
	case temperature < coldLimit || temperature > hotLimit:
		return tempPenaltyHard
	case temperature < coolLimit || temperature > warmLimit:
		return tempPenaltyMild
	default:
		return 0
	}
}

// PenaltiesFor штрафы для показаний
func PenaltiesFor(r *domain.WeatherReading) Penalties {
	return Penalties{
		Wind:          WindPenalty(r.WindSpeed),
		Precipitation: PrecipitationPenalty(r.Precipitation),
		Cloud:         CloudPenalty(r.CloudCover, r.Temperature),
		Temperature:   TemperaturePenalty(r.Temperature),
	}
}

// Score оценка 0-100: 100 минус штрафы, округление и ограничение диапазоном.
// При прочих равных не возрастает с ростом ветра и осадков.
func Score(r *domain.WeatherReading) int {
	score := int(math.Round(maxScore - PenaltiesFor(r).Total()))
	if score < 0 {
		return 0
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

// Level категория условий по оценке: >= 70 Good, 40-69 Moderate, < 40 Poor
func Level(score int) domain.ConditionsLevel {
	switch {
	case score >= domain.GoodScoreThreshold:
		return domain.ConditionsGood
	case score >= domain.ModerateScoreThreshold:
		return domain.ConditionsModerate
	default:
		return domain.ConditionsPoor
	}
}

// Explain текст для клиента по главному фактору штрафа
func Explain(r *domain.WeatherReading) string {
	switch PenaltiesFor(r).dominant() {
	case factorWind:
		if r.WindSpeed > windSafetyLimit {
			return fmt.Sprintf("Сильный ветер %.1f м/с: выходить на воду небезопасно.", r.WindSpeed)
		}
		return fmt.Sprintf("Ветер %.1f м/с: будет сложнее грести.", r.WindSpeed)
	case factorPrecipitation:
		return fmt.Sprintf("Осадки %.1f мм: возможен дискомфорт на маршруте.", r.Precipitation)
	case factorTemperature:
		if r.Temperature < coolLimit {
			return fmt.Sprintf("Прохладно (%.0f °C): возьмите гидрокостюм.", r.Temperature)
		}
		return fmt.Sprintf("Жарко (%.0f °C): возьмите воду и головной убор.", r.Temperature)
	case factorCloud:
		return "Облачно и прохладно: солнца почти не будет."
	default:
		return "Комфортные условия: слабый ветер и без осадков."
	}
}

// explainUnknown текст для наблюдения без прогноза
const explainUnknown = "Прогноз недоступен: оценка условий по умолчанию."
