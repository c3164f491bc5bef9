package get_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SUP-BookingService/internal/domain"
)

// parseDate разбирает дату запроса
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date, err := time.ParseInLocation(domain.DateFormat, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	return date, nil
}

// isDateInPast проверяет, что дата раньше текущих суток (UTC)
func isDateInPast(date, now time.Time) bool {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return date.Before(today)
}
