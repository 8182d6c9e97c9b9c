package create_booking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/eventbus"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/pricing"
	findResources "github.com/m04kA/SMC-VenueBookingService/internal/usecase/find_available_resources"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	AddResources(ctx context.Context, orderID, serviceID int64, start, end time.Time, resourceIDs []int64) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
}

// ResourceSelector подбор свободных ресурсов на окно
type ResourceSelector interface {
	Execute(ctx context.Context, req *findResources.Request) (*findResources.Response, error)
}

// PricingEngine расчёт стоимости
type PricingEngine interface {
	Quote(service *domain.Service, start time.Time, durationMinutes int, extras []string, discountPercent decimal.Decimal) (pricing.Quote, error)
	Catalog() domain.ExtrasCatalog
	Location() *time.Location
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetDiscountPercent(ctx context.Context, userID int64) decimal.Decimal
}

// EventPublisher публикация событий заказов
type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.OrderEvent) error
}

// Metrics бизнес-метрики бронирований
type Metrics interface {
	IncBookingCreated(serviceID int64)
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
