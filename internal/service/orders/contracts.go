package orders

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/eventbus"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/userservice"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Order, error)
	GetByFilter(ctx context.Context, filter domain.OrdersFilter) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error
	CompleteOverdue(ctx context.Context, now time.Time) ([]int64, error)
}

// AvailabilityChecker проверка занятости ресурсов
type AvailabilityChecker interface {
	BusyResources(ctx context.Context, resourceIDs []int64, start, end time.Time, excludeOrderID *int64) (map[int64]bool, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
}

// EventPublisher публикация событий заказов
type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.OrderEvent) error
}

// Metrics бизнес-метрики заказов
type Metrics interface {
	IncStatusChange(to string)
	AddOrdersCompleted(n int64)
	IncBookingConflict(operation string)
	IncEventFailed(eventType string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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
