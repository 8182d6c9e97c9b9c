package orders

import (
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = fmt.Errorf("orders: order %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда пользователь не владелец заказа
	ErrAccessDenied = fmt.Errorf("orders: %w", domain.ErrAccessDenied)

	// ErrCannotCancel возвращается, когда заказ нельзя отменить из текущего статуса
	ErrCannotCancel = fmt.Errorf("orders: %w: order cannot be cancelled", domain.ErrInvalidTransition)

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = fmt.Errorf("orders: %w", domain.ErrInvalidTransition)

	// ErrInvalidStatus возвращается при попытке установить статус вне разрешённого списка
	ErrInvalidStatus = fmt.Errorf("orders: %w: status is not allowed", domain.ErrInvalidRequest)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("orders: %w", domain.ErrInvalidRequest)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("orders: %w", domain.ErrPersistence)
)
