package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Instructor инструктор, проводящий прогулки
type Instructor struct {
	ID              uuid.UUID
	Name            string
	PhotoURL        string
	Bio             string
	BasePrice       int64 // в минимальных единицах валюты
	Rating          float64
	ReviewsCount    int
	ExperienceYears int
	Tags            []string
	Languages       []string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasTag проверяет наличие тега без учета регистра
func (i *Instructor) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// InstructorFilter фильтр списка инструкторов
type InstructorFilter struct {
	Tag           string   // Тег (без учета регистра), пусто - без фильтра
	MinPrice      *int64   // Минимальная базовая цена
	MaxPrice      *int64   // Максимальная базовая цена
	MinRating     *float64 // Минимальный рейтинг
	IncludeHidden bool     // Включать неактивных инструкторов
}

// Matches проверяет инструктора на соответствие фильтру
func (f InstructorFilter) Matches(i *Instructor) bool {
	if !f.IncludeHidden && !i.IsActive {
		return false
	}
	if f.MinPrice != nil && i.BasePrice < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && i.BasePrice > *f.MaxPrice {
		return false
	}
	if f.MinRating != nil && i.Rating < *f.MinRating {
		return false
	}
	if f.Tag != "" && !i.HasTag(f.Tag) {
		return false
	}
	return true
}
