package weather

import (
	"time"

	"github.com/google/uuid"
)

// Config параметры оценки погоды
type Config struct {
	Timeout        time.Duration
	DefaultLat     float64
	DefaultLng     float64
	LookaheadDays  int
	MaxCandidates  int
	MaxSuggestions int
}

// Request запрос оценки погоды
type Request struct {
	Lat          *float64
	Lng          *float64
	At           time.Time
	RouteID      *uuid.UUID
	InstructorID *uuid.UUID
}
