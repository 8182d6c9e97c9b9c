package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

var (
	// ErrInvalidWindow возвращается, когда окно пустое или перевёрнуто
	ErrInvalidWindow = fmt.Errorf("availability: %w: window end must be after start", domain.ErrInvalidRequest)

	// ErrInternal возвращается при ошибках чтения занятости
	ErrInternal = errors.New("availability: internal error")
)
