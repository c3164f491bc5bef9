package catalog

import (
	"github.com/google/uuid"

	"github.com/m04kA/SUP-BookingService/internal/domain"
)

// InstructorInput данные инструктора для создания или обновления.
// При пустом ID создается новый инструктор.
type InstructorInput struct {
	ID              uuid.UUID
	Name            string   `validate:"required,max=100"`
	PhotoURL        string   `validate:"omitempty,url"`
	Bio             string   `validate:"max=2000"`
	BasePrice       int64    `validate:"gte=0"`
	Rating          float64  `validate:"gte=0,lte=5"`
	ReviewsCount    int      `validate:"gte=0"`
	ExperienceYears int      `validate:"gte=0,lte=80"`
	Tags            []string `validate:"dive,required,max=32"`
	Languages       []string `validate:"dive,required,max=32"`
	IsActive        bool
}

// RouteInput данные маршрута для создания или обновления.
// При пустом ID создается новый маршрут.
type RouteInput struct {
	ID              uuid.UUID
	Title           string  `validate:"required,max=200"`
	Description     string  `validate:"max=2000"`
	BasePrice       int64   `validate:"gte=0"`
	DurationMinutes int     `validate:"gt=0,lte=1440"`
	Difficulty      string  `validate:"required,oneof=easy medium hard"`
	Lat             float64 `validate:"gte=-90,lte=90"`
	Lng             float64 `validate:"gte=-180,lte=180"`
	LocationTitle   string  `validate:"max=200"`
}

func (in *InstructorInput) toDomain() *domain.Instructor {
	return &domain.Instructor{
		ID:              in.ID,
		Name:            in.Name,
		PhotoURL:        in.PhotoURL,
		Bio:             in.Bio,
		BasePrice:       in.BasePrice,
		Rating:          in.Rating,
		ReviewsCount:    in.ReviewsCount,
		ExperienceYears: in.ExperienceYears,
		Tags:            in.Tags,
		Languages:       in.Languages,
		IsActive:        in.IsActive,
	}
}

func (in *RouteInput) toDomain() *domain.Route {
	return &domain.Route{
		ID:              in.ID,
		Title:           in.Title,
		Description:     in.Description,
		BasePrice:       in.BasePrice,
		DurationMinutes: in.DurationMinutes,
		Difficulty:      domain.Difficulty(in.Difficulty),
		Location: domain.Location{
			Lat:   in.Lat,
			Lng:   in.Lng,
			Title: in.LocationTitle,
		},
	}
}
