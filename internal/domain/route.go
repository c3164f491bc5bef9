package domain

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty сложность маршрута
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid проверяет, что значение входит в перечисление
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Location точка старта маршрута
type Location struct {
	Lat   float64
	Lng   float64
	Title string
}

// Route маршрут прогулки
type Route struct {
	ID              uuid.UUID
	Title           string
	Description     string
	BasePrice       int64 // в минимальных единицах валюты
	DurationMinutes int
	Difficulty      Difficulty
	Location        Location
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
