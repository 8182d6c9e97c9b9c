package find_available_resources

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// CatalogReader чтение каталога услуг и ресурсов
type CatalogReader interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	GetResourcesForService(ctx context.Context, serviceID int64) ([]domain.Resource, error)
}

// AvailabilityChecker проверка занятости ресурсов
type AvailabilityChecker interface {
	BusyResources(ctx context.Context, resourceIDs []int64, start, end time.Time, excludeOrderID *int64) (map[int64]bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
