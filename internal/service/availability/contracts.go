package availability

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	orderRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/order"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetBusyIntervals(ctx context.Context, q orderRepo.BusyQuery) ([]domain.BusyInterval, error)
}
