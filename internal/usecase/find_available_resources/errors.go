package find_available_resources

import (
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("find_available_resources: service %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("find_available_resources: %w", domain.ErrInvalidRequest)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("find_available_resources: %w", domain.ErrPersistence)
)
