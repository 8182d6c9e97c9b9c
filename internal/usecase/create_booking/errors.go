package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("create_booking: service %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_booking: %w", domain.ErrInvalidRequest)

	// ErrInvalidDuration возвращается, когда длительность не совпадает с длительностью услуги
	ErrInvalidDuration = fmt.Errorf("create_booking: %w: duration must match the service duration", domain.ErrInvalidRequest)

	// ErrOutsideOperatingHours возвращается, когда окно не помещается в часы работы услуги
	ErrOutsideOperatingHours = fmt.Errorf("create_booking: %w: window is outside operating hours", domain.ErrInvalidRequest)

	// ErrStartInPast возвращается при бронировании на прошедшее время
	ErrStartInPast = fmt.Errorf("create_booking: %w: start is in the past", domain.ErrInvalidRequest)

	// ErrWrongResourceCount возвращается, когда число ресурсов не равно требуемому для гостей
	ErrWrongResourceCount = fmt.Errorf("create_booking: %w: resource count does not match people count", domain.ErrInvalidRequest)

	// ErrInsufficientCapacity возвращается, когда выбранные ресурсы не вмещают всех гостей
	ErrInsufficientCapacity = fmt.Errorf("%w: chosen resources cannot seat everyone", ErrWrongResourceCount)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("create_booking: %w", domain.ErrPersistence)
)
