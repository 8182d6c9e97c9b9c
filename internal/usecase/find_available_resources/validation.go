package find_available_resources

import (
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Start.IsZero() {
		return fmt.Errorf("%w: start is required", ErrInvalidInput)
	}

	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration must not be negative", ErrInvalidInput)
	}

	if req.PeopleCount <= 0 {
		return fmt.Errorf("%w: peopleCount must be positive", ErrInvalidInput)
	}

	if req.PeopleCount > domain.MaxPeopleCount {
		return fmt.Errorf("%w: peopleCount must not exceed %d", ErrInvalidInput, domain.MaxPeopleCount)
	}

	return nil
}
