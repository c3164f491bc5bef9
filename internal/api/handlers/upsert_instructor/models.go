package upsert_instructor

import (
	"github.com/google/uuid"

	"github.com/m04kA/SUP-BookingService/internal/service/catalog"
)

// UpsertInstructorRequest HTTP request model. Без id создается новый инструктор.
type UpsertInstructorRequest struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	PhotoURL        string    `json:"photo_url"`
	Bio             string    `json:"bio"`
	BasePrice       int64     `json:"base_price"`
	Rating          float64   `json:"rating"`
	ReviewsCount    int       `json:"reviews_count"`
	ExperienceYears int       `json:"experience_years"`
	Tags            []string  `json:"tags"`
	Languages       []string  `json:"languages"`
	IsActive        *bool     `json:"is_active"`
}

// ToServiceInput конвертирует запрос, is_active по умолчанию true
func (r *UpsertInstructorRequest) ToServiceInput() *catalog.InstructorInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &catalog.InstructorInput{
		ID:              r.ID,
		Name:            r.Name,
		PhotoURL:        r.PhotoURL,
		Bio:             r.Bio,
		BasePrice:       r.BasePrice,
		Rating:          r.Rating,
		ReviewsCount:    r.ReviewsCount,
		ExperienceYears: r.ExperienceYears,
		Tags:            r.Tags,
		Languages:       r.Languages,
		IsActive:        active,
	}
}
