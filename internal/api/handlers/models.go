package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SUP-BookingService/internal/domain"
)

// InstructorResponse инструктор в ответах API
type InstructorResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	PhotoURL        string    `json:"photo_url,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	BasePrice       int64     `json:"base_price"`
	Rating          float64   `json:"rating"`
	ReviewsCount    int       `json:"reviews_count"`
	ExperienceYears int       `json:"experience_years"`
	Tags            []string  `json:"tags"`
	Languages       []string  `json:"languages"`
	IsActive        bool      `json:"is_active"`
}

// LocationResponse точка старта
type LocationResponse struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Title string  `json:"title,omitempty"`
}

// RouteResponse маршрут в ответах API
type RouteResponse struct {
	ID              uuid.UUID        `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description,omitempty"`
	BasePrice       int64            `json:"base_price"`
	DurationMinutes int              `json:"duration_minutes"`
	Difficulty      string           `json:"difficulty"`
	Location        LocationResponse `json:"location"`
}

// SlotResponse слот в ответах API
type SlotResponse struct {
	ID           uuid.UUID `json:"id"`
	InstructorID uuid.UUID `json:"instructor_id"`
	RouteID      uuid.UUID `json:"route_id"`
	StartAt      time.Time `json:"start_at"`
	EndAt        time.Time `json:"end_at"`
	Capacity     int       `json:"capacity"`
	Remaining    int       `json:"remaining"`
	Status       string    `json:"status"`
}

// FromDomainInstructor конвертирует инструктора
func FromDomainInstructor(i *domain.Instructor) InstructorResponse {
	return InstructorResponse{
		ID:              i.ID,
		Name:            i.Name,
		PhotoURL:        i.PhotoURL,
		Bio:             i.Bio,
		BasePrice:       i.BasePrice,
		Rating:          i.Rating,
		ReviewsCount:    i.ReviewsCount,
		ExperienceYears: i.ExperienceYears,
		Tags:            nonNil(i.Tags),
		Languages:       nonNil(i.Languages),
		IsActive:        i.IsActive,
	}
}

// FromDomainRoute конвертирует маршрут
func FromDomainRoute(r *domain.Route) RouteResponse {
	return RouteResponse{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		BasePrice:       r.BasePrice,
		DurationMinutes: r.DurationMinutes,
		Difficulty:      string(r.Difficulty),
		Location: LocationResponse{
			Lat:   r.Location.Lat,
			Lng:   r.Location.Lng,
			Title: r.Location.Title,
		},
	}
}

// FromDomainSlot конвертирует слот
func FromDomainSlot(s *domain.Slot) SlotResponse {
	return SlotResponse{
		ID:           s.ID,
		InstructorID: s.InstructorID,
		RouteID:      s.RouteID,
		StartAt:      s.StartAt.UTC(),
		EndAt:        s.EndAt.UTC(),
		Capacity:     s.Capacity,
		Remaining:    s.Remaining,
		Status:       string(s.Status),
	}
}

// FromDomainSlots конвертирует список слотов, пустой список остается массивом
func FromDomainSlots(slots []*domain.Slot) []SlotResponse {
	result := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		result = append(result, FromDomainSlot(s))
	}
	return result
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
