package get_weather

import (
	"time"

	"github.com/m04kA/SUP-BookingService/internal/api/handlers"
	"github.com/m04kA/SUP-BookingService/internal/domain"
)

// SuggestedSlotResponse альтернативный слот с оценкой погоды
type SuggestedSlotResponse struct {
	Slot            handlers.SlotResponse `json:"slot"`
	Score           int                   `json:"score"`
	ConditionsLevel string                `json:"conditions_level"`
}

// WeatherResponse HTTP response model
type WeatherResponse struct {
	Temperature     float64                   `json:"temperature"`
	WindSpeed       float64                   `json:"wind_speed"`
	Precipitation   float64                   `json:"precipitation"`
	CloudCover      int                       `json:"cloud_cover"`
	ConditionsLevel string                    `json:"conditions_level"`
	Score           int                       `json:"score"`
	Explanation     string                    `json:"explanation"`
	Unknown         bool                      `json:"unknown"`
	Location        handlers.LocationResponse `json:"location"`
	At              time.Time                 `json:"at"`
	SuggestedSlots  []SuggestedSlotResponse   `json:"suggested_slots"`
}

// FromObservation конвертирует наблюдение в HTTP response
func FromObservation(o *domain.WeatherObservation) *WeatherResponse {
	suggestions := make([]SuggestedSlotResponse, 0, len(o.SuggestedSlots))
	for i := range o.SuggestedSlots {
		s := &o.SuggestedSlots[i]
		suggestions = append(suggestions, SuggestedSlotResponse{
			Slot:            handlers.FromDomainSlot(&s.Slot),
			Score:           s.Score,
			ConditionsLevel: string(s.ConditionsLevel),
		})
	}

	return &WeatherResponse{
		Temperature:     o.Temperature,
		WindSpeed:       o.WindSpeed,
		Precipitation:   o.Precipitation,
		CloudCover:      o.CloudCover,
		ConditionsLevel: string(o.ConditionsLevel),
		Score:           o.Score,
		Explanation:     o.Explanation,
		Unknown:         o.Unknown,
		Location: handlers.LocationResponse{
			Lat:   o.Location.Lat,
			Lng:   o.Location.Lng,
			Title: o.Location.Title,
		},
		At:             o.At,
		SuggestedSlots: suggestions,
	}
}
