package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	orderRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/order"
)

// Checker определяет, занят ли ресурс в окне [start, end).
// Только чтение: внутри транзакции вызывающего использует её через контекст.
type Checker struct {
	orderRepo OrderRepository
}

// NewChecker создает новый экземпляр проверки занятости
func NewChecker(orderRepo OrderRepository) *Checker {
	return &Checker{orderRepo: orderRepo}
}

// IsResourceBusy возвращает true, если ресурс занят не отменённым заказом, пересекающим окно.
// excludeOrderID исключает заказ из проверки (перенос заказа).
func (c *Checker) IsResourceBusy(ctx context.Context, resourceID int64, start, end time.Time, excludeOrderID *int64) (bool, error) {
	busy, err := c.BusyResources(ctx, []int64{resourceID}, start, end, excludeOrderID)
	if err != nil {
		return false, err
	}
	return busy[resourceID], nil
}

// BusyResources проверяет набор ресурсов одним запросом.
// Результат содержит только занятые ресурсы.
func (c *Checker) BusyResources(ctx context.Context, resourceIDs []int64, start, end time.Time, excludeOrderID *int64) (map[int64]bool, error) {
	if !end.After(start) {
		return nil, ErrInvalidWindow
	}

	intervals, err := c.BusyIntervals(ctx, resourceIDs, start, end, excludeOrderID)
	if err != nil {
		return nil, err
	}

	busy := make(map[int64]bool)
	for _, interval := range intervals {
		if domain.Overlaps(start, end, interval.Start, interval.End) {
			busy[interval.ResourceID] = true
		}
	}

	return busy, nil
}

// BusyIntervals возвращает занятость ресурсов, которая может задевать окно [from, to)
func (c *Checker) BusyIntervals(ctx context.Context, resourceIDs []int64, from, to time.Time, excludeOrderID *int64) ([]domain.BusyInterval, error) {
	intervals, err := c.orderRepo.GetBusyIntervals(ctx, orderRepo.BusyQuery{
		ResourceIDs:    resourceIDs,
		From:           from,
		To:             to,
		ExcludeOrderID: excludeOrderID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: load busy intervals: %w", ErrInternal, err)
	}
	return intervals, nil
}
