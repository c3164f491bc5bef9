package get_availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SUP-BookingService/internal/domain"
)

// Request модель запроса доступных слотов
type Request struct {
	Date         string     // Дата в формате YYYY-MM-DD (UTC)
	RouteID      *uuid.UUID // Фильтр по маршруту (опционально)
	InstructorID *uuid.UUID // Фильтр по инструктору (опционально)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date  time.Time      // Запрошенная дата
	Slots []*domain.Slot // Активные слоты со свободными местами по возрастанию времени начала
}
