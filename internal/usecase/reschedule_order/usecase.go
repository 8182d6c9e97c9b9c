package reschedule_order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	orderRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/order"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/eventbus"
)

// UseCase use case для переноса заказа на другое время
type UseCase struct {
	orderRepo    OrderRepository
	checker      AvailabilityChecker
	pricing      PricingEngine
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	reprice      bool
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// reprice включает пересчёт стоимости по новому окну.
func NewUseCase(
	orderRepo OrderRepository,
	checker AvailabilityChecker,
	pricing PricingEngine,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	reprice bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		orderRepo:    orderRepo,
		checker:      checker,
		pricing:      pricing,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		reprice:      reprice,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переносит заказ. Строка заказа блокируется, все ресурсы проверяются
// на новое окно без учёта самого заказа, обновление идёт одной транзакцией.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleOrder: order=%d, requester=%d, admin=%t, newStart=%s",
		req.OrderID, req.RequesterID, req.IsAdmin, req.NewStart.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("RescheduleOrder: validation failed: %v", err)
		return nil, err
	}

	newStart := req.NewStart.UTC()
	var resp *Response

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем заказ с блокировкой строки
		order, err := uc.orderRepo.GetByID(txCtx, req.OrderID)
		if err != nil {
			if errors.Is(err, orderRepo.ErrOrderNotFound) {
				return fmt.Errorf("%w: id=%d", ErrOrderNotFound, req.OrderID)
			}
			return fmt.Errorf("%w: get order: %w", ErrInternal, err)
		}

		// 2.2. Проверяем права и статус
		if !req.IsAdmin && !order.IsOwnedBy(req.RequesterID) {
			return ErrAccessDenied
		}
		if !order.CanBeRescheduled() {
			return fmt.Errorf("%w: status=%s", ErrCannotReschedule, order.Status)
		}
		if order.Service == nil {
			return fmt.Errorf("%w: order id=%d has no service", ErrInternal, order.ID)
		}
		service := order.Service

		// 2.3. Новое окно в часах работы услуги
		if !service.FitsOperatingHours(newStart, service.DurationMinutes, uc.pricing.Location()) {
			return fmt.Errorf("%w: %s-%s", ErrOutsideOperatingHours, service.StartTime, service.EndTime)
		}
		newEnd := newStart.Add(service.Duration())

		// 2.4. Все ресурсы заказа свободны на новое окно
		resourceIDs := order.ResourceIDs()
		busy, err := uc.checker.BusyResources(txCtx, resourceIDs, newStart, newEnd, &order.ID)
		if err != nil {
			return fmt.Errorf("%w: availability check: %w", ErrInternal, err)
		}
		conflicts := make([]int64, 0, len(busy))
		for _, id := range resourceIDs {
			if busy[id] {
				conflicts = append(conflicts, id)
			}
		}
		if len(conflicts) > 0 {
			return domain.NewResourceUnavailableError(conflicts...)
		}

		// 2.5. Стоимость: прежняя или пересчитанная по сохранённым extras и скидке
		price := order.TotalPrice
		if uc.reprice {
			q, err := uc.pricing.Quote(service, newStart, service.DurationMinutes, order.Extras, order.DiscountPercent)
			if err != nil {
				return fmt.Errorf("%w: reprice: %v", ErrInvalidInput, err)
			}
			price = q.Total
		}

		// 2.6. Обновляем заказ и занятость ресурсов
		if err := uc.orderRepo.UpdateSchedule(txCtx, order.ID, newStart, newEnd, price); err != nil {
			if errors.Is(err, orderRepo.ErrResourceBusy) {
				return domain.NewResourceUnavailableError(resourceIDs...)
			}
			if errors.Is(err, orderRepo.ErrOrderNotFound) {
				return fmt.Errorf("%w: id=%d", ErrOrderNotFound, order.ID)
			}
			return fmt.Errorf("%w: update schedule: %w", ErrInternal, err)
		}

		// 2.7. Перечитываем заказ
		updated, err := uc.orderRepo.GetByID(txCtx, order.ID)
		if err != nil {
			return fmt.Errorf("%w: reload order id=%d: %w", ErrInternal, order.ID, err)
		}

		resp = &Response{
			Order:         updated,
			PreviousStart: order.OrderDate,
			PreviousPrice: order.TotalPrice,
			Repriced:      uc.reprice,
		}
		return nil
	})
	if err != nil {
		return nil, uc.handleFailure(err)
	}

	// 3. После фиксации публикуем событие
	event := eventbus.NewOrderEvent(eventbus.OrderRescheduled, resp.Order, uc.timeProvider.Now())
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.metrics.IncEventFailed(string(event.Type))
		uc.logger.Warn("RescheduleOrder: failed to publish %s for order id=%d: %v", event.Type, event.OrderID, err)
	}

	uc.logger.Info("RescheduleOrder: order id=%d moved %s -> %s, total=%s",
		resp.Order.ID, resp.PreviousStart.Format(time.RFC3339), resp.Order.OrderDate.Format(time.RFC3339),
		resp.Order.TotalPrice.StringFixed(2))

	return resp, nil
}

func (uc *UseCase) handleFailure(err error) error {
	switch {
	case errors.Is(err, domain.ErrResourceUnavailable):
		uc.metrics.IncBookingConflict("reschedule")
		uc.logger.Warn("RescheduleOrder: resources unavailable: %v", err)
		return err
	case errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrAccessDenied),
		errors.Is(err, domain.ErrInvalidTransition):
		uc.logger.Warn("RescheduleOrder: rejected: %v", err)
		return err
	case errors.Is(err, domain.ErrPersistence):
		uc.logger.Error("RescheduleOrder: transaction failed: %v", err)
		return err
	default:
		uc.logger.Error("RescheduleOrder: transaction failed: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
