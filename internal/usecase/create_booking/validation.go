package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	findResources "github.com/m04kA/SMC-VenueBookingService/internal/usecase/find_available_resources"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

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

	if len(req.ResourceIDs) == 0 {
		return fmt.Errorf("%w: at least one resource is required", ErrInvalidInput)
	}

	if len(req.ResourceIDs) > domain.MaxResourcesPerOrder {
		return fmt.Errorf("%w: at most %d resources per order", ErrInvalidInput, domain.MaxResourcesPerOrder)
	}

	seen := make(map[int64]struct{}, len(req.ResourceIDs))
	for _, id := range req.ResourceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: resource id must be positive", ErrInvalidInput)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate resource id %d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	return nil
}

// validateStart проверяет, что начало не в прошлом
func validateStart(start, now time.Time) error {
	if start.Before(now) {
		return ErrStartInPast
	}
	return nil
}

// validateSelection проверяет запрошенные ресурсы по результату подбора:
// каждый должен быть свободен, их число равно требуемому для гостей,
// а суммарная вместимость не меньше числа гостей
func validateSelection(requested []int64, selection *findResources.Response) error {
	missing := make([]int64, 0)
	for _, id := range requested {
		if !selection.Contains(id) {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return domain.NewResourceUnavailableError(missing...)
	}

	if len(requested) != selection.RequiredResourceCount {
		return fmt.Errorf("%w: got %d, need %d for %d people",
			ErrWrongResourceCount, len(requested), selection.RequiredResourceCount, selection.PeopleCount)
	}

	if capacity := domain.TotalCapacity(selection.Resources(requested)); capacity < selection.PeopleCount {
		return fmt.Errorf("%w: capacity %d for %d people", ErrInsufficientCapacity, capacity, selection.PeopleCount)
	}

	return nil
}
