package orders

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/orders/models"
)

// GetStatistics считает статистику по заказам с датой начала в [From, To].
// Выручка учитывает все не отменённые заказы.
func (s *Service) GetStatistics(ctx context.Context, req *models.StatisticsRequest) (*models.StatisticsResponse, error) {
	s.logger.Info("GetStatistics: period=%s to %s", req.From.Format(time.RFC3339), req.To.Format(time.RFC3339))

	if req.From.IsZero() || req.To.IsZero() {
		return nil, fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	if req.From.After(req.To) {
		return nil, fmt.Errorf("%w: from must not be after to", ErrInvalidInput)
	}

	from, to := req.From, req.To
	var orders []*domain.Order
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		orders, err = s.orderRepo.GetByFilter(txCtx, domain.OrdersFilter{From: &from, To: &to})
		return err
	})
	if err != nil {
		s.logger.Error("GetStatistics: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetStatistics - repository error: %v", ErrInternal, err)
	}

	stats := aggregate(orders, from, to, s.loc)

	s.logger.Info("GetStatistics: %d orders, revenue=%s", stats.TotalOrders, stats.TotalRevenue.StringFixed(2))
	return models.FromDomainStatistics(stats), nil
}

func aggregate(orders []*domain.Order, from, to time.Time, loc *time.Location) *domain.Statistics {
	stats := &domain.Statistics{
		From:              from,
		To:                to,
		OrdersByStatus:    make(map[domain.OrderStatus]int, len(domain.AllStatuses)),
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
	}

	byService := make(map[int64]*domain.ServiceRevenue)
	byDay := make(map[string]*domain.DayRevenue)
	revenueOrders := 0

	for _, o := range orders {
		stats.TotalOrders++
		stats.OrdersByStatus[o.Status]++

		switch o.Status {
		case domain.StatusCancelled:
			stats.CancelledOrders++
		case domain.StatusCompleted:
			stats.CompletedOrders++
		}

		if !o.CountsTowardRevenue() {
			continue
		}
		revenueOrders++
		stats.TotalRevenue = stats.TotalRevenue.Add(o.TotalPrice)

		sr, ok := byService[o.ServiceID]
		if !ok {
			sr = &domain.ServiceRevenue{ServiceID: o.ServiceID, Revenue: decimal.Zero}
			if o.Service != nil {
				sr.ServiceName = o.Service.Name
			}
			byService[o.ServiceID] = sr
		}
		sr.Orders++
		sr.Revenue = sr.Revenue.Add(o.TotalPrice)

		day := o.OrderDate.In(loc).Format(domain.DateFormat)
		dr, ok := byDay[day]
		if !ok {
			dr = &domain.DayRevenue{Date: day, Revenue: decimal.Zero}
			byDay[day] = dr
		}
		dr.Orders++
		dr.Revenue = dr.Revenue.Add(o.TotalPrice)
	}

	if revenueOrders > 0 {
		stats.AverageOrderValue = stats.TotalRevenue.Div(decimal.NewFromInt(int64(revenueOrders)))
	}

	stats.RevenueByService = make([]domain.ServiceRevenue, 0, len(byService))
	for _, sr := range byService {
		stats.RevenueByService = append(stats.RevenueByService, *sr)
	}
	sort.Slice(stats.RevenueByService, func(i, j int) bool {
		return stats.RevenueByService[i].ServiceID < stats.RevenueByService[j].ServiceID
	})

	stats.RevenueByDay = make([]domain.DayRevenue, 0, len(byDay))
	for _, dr := range byDay {
		stats.RevenueByDay = append(stats.RevenueByDay, *dr)
	}
	sort.Slice(stats.RevenueByDay, func(i, j int) bool {
		return stats.RevenueByDay[i].Date < stats.RevenueByDay[j].Date
	})

	return stats
}
