package check_availability

import (
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("check_availability: service %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("check_availability: %w", domain.ErrInvalidRequest)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("check_availability: %w", domain.ErrPersistence)
)
