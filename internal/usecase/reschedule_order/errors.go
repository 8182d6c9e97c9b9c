package reschedule_order

import (
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = fmt.Errorf("reschedule_order: order %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда пользователь не владелец заказа
	ErrAccessDenied = fmt.Errorf("reschedule_order: %w", domain.ErrAccessDenied)

	// ErrCannotReschedule возвращается для отменённых и завершённых заказов
	ErrCannotReschedule = fmt.Errorf("reschedule_order: %w: order cannot be rescheduled", domain.ErrInvalidTransition)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("reschedule_order: %w", domain.ErrInvalidRequest)

	// ErrStartInPast возвращается при переносе на прошедшее время
	ErrStartInPast = fmt.Errorf("reschedule_order: %w: start is in the past", domain.ErrInvalidRequest)

	// ErrOutsideOperatingHours возвращается, когда новое окно не помещается в часы работы услуги
	ErrOutsideOperatingHours = fmt.Errorf("reschedule_order: %w: window is outside operating hours", domain.ErrInvalidRequest)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("reschedule_order: %w", domain.ErrPersistence)
)
