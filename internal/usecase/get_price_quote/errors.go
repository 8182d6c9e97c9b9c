package get_price_quote

import (
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("get_price_quote: service %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("get_price_quote: %w", domain.ErrInvalidRequest)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("get_price_quote: %w", domain.ErrPersistence)
)
