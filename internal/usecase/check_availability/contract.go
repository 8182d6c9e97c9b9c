package check_availability

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// CatalogReader чтение услуг каталога
type CatalogReader interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
