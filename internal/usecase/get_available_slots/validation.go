package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.PeopleCount < 0 || req.PeopleCount > domain.MaxPeopleCount {
		return fmt.Errorf("%w: peopleCount must be between 0 and %d", ErrInvalidInput, domain.MaxPeopleCount)
	}

	return nil
}

// validateDate проверяет, что день не в прошлом
func validateDate(day, now time.Time) error {
	if isDateInPast(day, now) {
		return ErrInvalidDate
	}
	return nil
}
