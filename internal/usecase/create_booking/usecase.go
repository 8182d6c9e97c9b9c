package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	orderRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/order"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/eventbus"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/pricing"
	findResources "github.com/m04kA/SMC-VenueBookingService/internal/usecase/find_available_resources"
)

// UseCase use case для создания бронирования
type UseCase struct {
	orderRepo    OrderRepository
	selector     ResourceSelector
	pricing      PricingEngine
	userClient   UserServiceClient
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	orderRepo OrderRepository,
	selector ResourceSelector,
	pricing PricingEngine,
	userClient UserServiceClient,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		orderRepo:    orderRepo,
		selector:     selector,
		pricing:      pricing,
		userClient:   userClient,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка занятости и вставка идут в одной сериализуемой транзакции,
// при ошибке ничего не сохраняется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, service=%d, start=%s, people=%d, resources=%v, extras=%v",
		req.UserID, req.ServiceID, req.Start.Format(time.RFC3339), req.PeopleCount, req.ResourceIDs, req.Extras)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	extras, err := uc.pricing.Catalog().Normalize(req.Extras)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid extras %v: %v", req.Extras, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Проверяем, что начало не в прошлом
	start := req.Start.UTC()
	if err := validateStart(start, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: start=%s is in the past", start.Format(time.RFC3339))
		return nil, err
	}

	// 3. Скидка пользователя, ошибки UserService дают 0%
	discount := uc.userClient.GetDiscountPercent(ctx, req.UserID)

	var result *domain.Order
	var quote pricing.Quote

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Подбираем свободные ресурсы на окно
		selection, err := uc.selector.Execute(txCtx, &findResources.Request{
			ServiceID:       req.ServiceID,
			Start:           start,
			DurationMinutes: req.DurationMinutes,
			PeopleCount:     req.PeopleCount,
		})
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: id=%d", ErrServiceNotFound, req.ServiceID)
			}
			if errors.Is(err, domain.ErrInvalidRequest) {
				return err
			}
			return fmt.Errorf("%w: select resources: %w", ErrInternal, err)
		}
		service := selection.Service

		// 4.2. Длительность задаётся услугой
		if selection.DurationMinutes != service.DurationMinutes {
			return fmt.Errorf("%w: got %d, service %d", ErrInvalidDuration, selection.DurationMinutes, service.DurationMinutes)
		}

		// 4.3. Все запрошенные ресурсы свободны и их ровно столько, сколько нужно
		if err := validateSelection(req.ResourceIDs, selection); err != nil {
			return err
		}

		// 4.4. Окно в часах работы услуги
		if !service.FitsOperatingHours(start, service.DurationMinutes, uc.pricing.Location()) {
			return fmt.Errorf("%w: %s-%s", ErrOutsideOperatingHours, service.StartTime, service.EndTime)
		}

		// 4.5. Считаем стоимость
		q, err := uc.pricing.Quote(service, start, service.DurationMinutes, extras, discount)
		if err != nil {
			return fmt.Errorf("%w: pricing: %v", ErrInvalidInput, err)
		}

		// 4.6. Создаём заказ и занимаем ресурсы
		created, err := uc.orderRepo.Create(txCtx, &domain.Order{
			UserID:          req.UserID,
			ServiceID:       service.ID,
			OrderDate:       start,
			TotalPrice:      q.Total,
			PeopleCount:     req.PeopleCount,
			Status:          domain.StatusCreated,
			Extras:          extras,
			DiscountPercent: q.DiscountPercent,
		})
		if err != nil {
			if errors.Is(err, orderRepo.ErrForeignKey) {
				return fmt.Errorf("%w: id=%d", ErrServiceNotFound, req.ServiceID)
			}
			return fmt.Errorf("%w: create order: %w", ErrInternal, err)
		}

		if err := uc.orderRepo.AddResources(txCtx, created.ID, service.ID, start, selection.End, req.ResourceIDs); err != nil {
			if errors.Is(err, orderRepo.ErrResourceBusy) || errors.Is(err, orderRepo.ErrForeignKey) {
				return domain.NewResourceUnavailableError(req.ResourceIDs...)
			}
			return fmt.Errorf("%w: add resources: %w", ErrInternal, err)
		}

		// 4.7. Перечитываем заказ с услугой и ресурсами
		order, err := uc.orderRepo.GetByID(txCtx, created.ID)
		if err != nil {
			return fmt.Errorf("%w: reload order id=%d: %w", ErrInternal, created.ID, err)
		}

		result = order
		quote = q
		return nil
	})
	if err != nil {
		return nil, uc.handleFailure(err)
	}

	// 5. После фиксации: метрики и событие
	uc.metrics.IncBookingCreated(result.ServiceID)
	uc.publish(ctx, eventbus.NewOrderEvent(eventbus.OrderCreated, result, uc.timeProvider.Now()))

	uc.logger.Info("CreateBooking: order id=%d created, total=%s, resources=%v",
		result.ID, result.TotalPrice.StringFixed(2), result.ResourceIDs())

	return &Response{Order: result, Quote: quote}, nil
}

func (uc *UseCase) handleFailure(err error) error {
	switch {
	case errors.Is(err, domain.ErrResourceUnavailable):
		uc.metrics.IncBookingConflict("create")
		uc.logger.Warn("CreateBooking: resources unavailable: %v", err)
		return err
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrNotFound):
		uc.logger.Warn("CreateBooking: rejected: %v", err)
		return err
	case errors.Is(err, domain.ErrPersistence):
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return err
	default:
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

// publish отправляет событие, ошибка не влияет на бронирование
func (uc *UseCase) publish(ctx context.Context, event eventbus.OrderEvent) {
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.metrics.IncEventFailed(string(event.Type))
		uc.logger.Warn("CreateBooking: failed to publish %s for order id=%d: %v", event.Type, event.OrderID, err)
	}
}
