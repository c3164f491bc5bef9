package upsert_route

import (
	"github.com/google/uuid"

	"github.com/m04kA/SUP-BookingService/internal/service/catalog"
)

// LocationRequest точка старта маршрута
type LocationRequest struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Title string  `json:"title"`
}

// UpsertRouteRequest HTTP request model. Без id создается новый маршрут.
type UpsertRouteRequest struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	BasePrice       int64           `json:"base_price"`
	DurationMinutes int             `json:"duration_minutes"`
	Difficulty      string          `json:"difficulty"`
	Location        LocationRequest `json:"location"`
}

func (r *UpsertRouteRequest) ToServiceInput() *catalog.RouteInput {
	return &catalog.RouteInput{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		BasePrice:       r.BasePrice,
		DurationMinutes: r.DurationMinutes,
		Difficulty:      r.Difficulty,
		Lat:             r.Location.Lat,
		Lng:             r.Location.Lng,
		LocationTitle:   r.Location.Title,
	}
}
