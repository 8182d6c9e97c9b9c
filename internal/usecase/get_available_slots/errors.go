package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("get_available_slots: service %w", domain.ErrNotFound)

	// ErrInvalidDate возвращается, когда дата в прошлом
	ErrInvalidDate = fmt.Errorf("get_available_slots: %w: date is in the past", domain.ErrInvalidRequest)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("get_available_slots: %w", domain.ErrInvalidRequest)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("get_available_slots: %w", domain.ErrPersistence)
)
