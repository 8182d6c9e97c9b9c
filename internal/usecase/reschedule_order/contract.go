package reschedule_order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/eventbus"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/pricing"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	UpdateSchedule(ctx context.Context, id int64, start, end time.Time, totalPrice decimal.Decimal) error
}

// AvailabilityChecker проверка занятости ресурсов
type AvailabilityChecker interface {
	BusyResources(ctx context.Context, resourceIDs []int64, start, end time.Time, excludeOrderID *int64) (map[int64]bool, error)
}

// PricingEngine расчёт стоимости
type PricingEngine interface {
	Quote(service *domain.Service, start time.Time, durationMinutes int, extras []string, discountPercent decimal.Decimal) (pricing.Quote, error)
	Location() *time.Location
}

// EventPublisher публикация событий заказов
type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.OrderEvent) error
}

// Metrics бизнес-метрики бронирований
type Metrics interface {
	IncBookingConflict(operation string)
	IncEventFailed(eventType string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
