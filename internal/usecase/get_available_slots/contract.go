package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// CatalogReader чтение услуг и ресурсов
type CatalogReader interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	GetResourcesForService(ctx context.Context, serviceID int64) ([]domain.Resource, error)
}

// AvailabilityChecker занятость ресурсов за период
type AvailabilityChecker interface {
	BusyIntervals(ctx context.Context, resourceIDs []int64, from, to time.Time, excludeOrderID *int64) ([]domain.BusyInterval, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
