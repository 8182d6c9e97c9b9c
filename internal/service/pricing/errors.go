package pricing

import (
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

var (
	// ErrInvalidDuration возвращается при неположительной длительности
	ErrInvalidDuration = fmt.Errorf("pricing: %w: duration must be positive", domain.ErrInvalidRequest)

	// ErrUnknownExtra возвращается для дополнительной опции вне каталога
	ErrUnknownExtra = fmt.Errorf("pricing: %w: unknown extra", domain.ErrInvalidRequest)

	// ErrNilService возвращается, когда услуга не передана
	ErrNilService = fmt.Errorf("pricing: %w: service is required", domain.ErrInvalidRequest)
)
