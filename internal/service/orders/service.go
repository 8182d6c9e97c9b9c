package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	orderRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/order"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/eventbus"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/orders/models"
)

// Service сервис жизненного цикла заказов
type Service struct {
	orderRepo    OrderRepository
	checker      AvailabilityChecker
	txManager    TransactionManager
	userClient   UserServiceClient
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	loc          *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса заказов
func NewService(
	orderRepo OrderRepository,
	checker AvailabilityChecker,
	txManager TransactionManager,
	userClient UserServiceClient,
	publisher EventPublisher,
	metrics Metrics,
	loc *time.Location,
	logger Logger,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		orderRepo:    orderRepo,
		checker:      checker,
		txManager:    txManager,
		userClient:   userClient,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		loc:          loc,
		logger:       logger,
	}
}

// GetByID получает заказ по ID
// Владелец видит свой заказ, администратор - любой
func (s *Service) GetByID(ctx context.Context, orderID, requesterID int64, isAdmin bool) (*models.OrderResponse, error) {
	s.logger.Info("GetByID: fetching order id=%d for user=%d, admin=%t", orderID, requesterID, isAdmin)

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("GetByID: order id=%d not found", orderID)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("GetByID: repository error for order id=%d: %v", orderID, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !isAdmin && !order.IsOwnedBy(requesterID) {
		s.logger.Warn("GetByID: access denied for user=%d to order id=%d", requesterID, orderID)
		return nil, ErrAccessDenied
	}

	s.attachUser(ctx, order)

	s.logger.Info("GetByID: successfully fetched order id=%d", orderID)
	return models.FromDomainOrder(order, s.loc), nil
}

// GetUserOrders получает историю заказов пользователя
func (s *Service) GetUserOrders(ctx context.Context, req *models.GetUserOrdersRequest) (*models.OrderListResponse, error) {
	s.logger.Info("GetUserOrders: fetching orders for user=%d, requester=%d", req.UserID, req.RequesterID)

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userId must be positive", ErrInvalidInput)
	}

	if !req.IsAdmin && req.RequesterID != req.UserID {
		s.logger.Warn("GetUserOrders: user=%d cannot read orders of user=%d", req.RequesterID, req.UserID)
		return nil, ErrAccessDenied
	}

	orders, err := s.orderRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		s.logger.Error("GetUserOrders: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserOrders - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserOrders: successfully fetched %d orders for user=%d", len(orders), req.UserID)
	return models.FromDomainOrderList(orders, s.loc), nil
}

// ListOrders получает заказы площадки с фильтрацией (администратор)
func (s *Service) ListOrders(ctx context.Context, req *models.ListOrdersRequest) (*models.OrderListResponse, error) {
	logMsg := "ListOrders: fetching orders"
	if req.From != nil && req.To != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.From.Format(time.RFC3339), req.To.Format(time.RFC3339))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListOrders: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter: %v", ErrInvalidInput, err)
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, fmt.Errorf("%w: from must not be after to", ErrInvalidInput)
	}

	// Заказы и их ресурсы читаются из одного снимка
	var orders []*domain.Order
	err = s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		orders, err = s.orderRepo.GetByFilter(txCtx, filter)
		return err
	})
	if err != nil {
		s.logger.Error("ListOrders: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListOrders - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListOrders: successfully fetched %d orders", len(orders))
	return models.FromDomainOrderList(orders, s.loc), nil
}

// Cancel отменяет заказ по запросу владельца.
// Отмена возможна только из created и awaiting_payment.
func (s *Service) Cancel(ctx context.Context, orderID, userID int64) (*models.StatusChangeResponse, error) {
	s.logger.Info("Cancel: order id=%d by user=%d", orderID, userID)

	var order *domain.Order
	var previous domain.OrderStatus

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		o, err := s.lockOrder(txCtx, orderID)
		if err != nil {
			return err
		}

		if !o.IsOwnedBy(userID) {
			return ErrAccessDenied
		}
		if !o.CanBeCancelledByCustomer() {
			return fmt.Errorf("%w: status=%s", ErrCannotCancel, o.Status)
		}

		if err := s.orderRepo.UpdateStatus(txCtx, orderID, domain.StatusCancelled); err != nil {
			return fmt.Errorf("%w: Cancel - update status: %w", ErrInternal, err)
		}

		previous = o.Status
		o.Status = domain.StatusCancelled
		order = o
		return nil
	})
	if err != nil {
		s.logFailure("Cancel", orderID, err)
		return nil, s.mapTxError("Cancel", err)
	}

	s.afterStatusChange(ctx, order, previous, eventbus.OrderCancelled)

	s.logger.Info("Cancel: order id=%d cancelled by user=%d", orderID, userID)
	return statusChange(orderID, previous, domain.StatusCancelled), nil
}

// ForceCancel отменяет любой незавершённый заказ (администратор)
func (s *Service) ForceCancel(ctx context.Context, orderID int64) (*models.StatusChangeResponse, error) {
	s.logger.Info("ForceCancel: order id=%d", orderID)

	var order *domain.Order
	var previous domain.OrderStatus

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		o, err := s.lockOrder(txCtx, orderID)
		if err != nil {
			return err
		}

		if o.Status.IsTerminal() {
			return fmt.Errorf("%w: order is already %s", ErrInvalidTransition, o.Status)
		}

		if err := s.orderRepo.UpdateStatus(txCtx, orderID, domain.StatusCancelled); err != nil {
			return fmt.Errorf("%w: ForceCancel - update status: %w", ErrInternal, err)
		}

		previous = o.Status
		o.Status = domain.StatusCancelled
		order = o
		return nil
	})
	if err != nil {
		s.logFailure("ForceCancel", orderID, err)
		return nil, s.mapTxError("ForceCancel", err)
	}

	s.afterStatusChange(ctx, order, previous, eventbus.OrderCancelled)

	s.logger.Info("ForceCancel: order id=%d cancelled from status=%s", orderID, previous)
	return statusChange(orderID, previous, domain.StatusCancelled), nil
}

// UpdateStatus устанавливает статус заказа (администратор).
// Возврат заказа из cancelled повторно проверяет занятость его ресурсов.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, rawStatus string) (*models.StatusChangeResponse, error) {
	s.logger.Info("UpdateStatus: order id=%d, status=%s", orderID, rawStatus)

	target, err := domain.ParseOrderStatus(rawStatus)
	if err != nil {
		s.logger.Warn("UpdateStatus: unknown status=%q for order id=%d", rawStatus, orderID)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !target.IsAdminSettable() {
		s.logger.Warn("UpdateStatus: status=%s is not allowed for order id=%d", target, orderID)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, target)
	}

	var order *domain.Order
	var previous domain.OrderStatus

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		o, err := s.lockOrder(txCtx, orderID)
		if err != nil {
			return err
		}

		previous = o.Status
		if o.Status == target {
			return nil
		}

		if !o.IsActive() && target.OccupiesCalendar() {
			if err := s.ensureResourcesFree(txCtx, o); err != nil {
				return err
			}
		}

		if err := s.orderRepo.UpdateStatus(txCtx, orderID, target); err != nil {
			if errors.Is(err, orderRepo.ErrResourceBusy) {
				return domain.NewResourceUnavailableError(o.ResourceIDs()...)
			}
			return fmt.Errorf("%w: UpdateStatus - update status: %w", ErrInternal, err)
		}

		o.Status = target
		order = o
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrResourceUnavailable) {
			s.metrics.IncBookingConflict("update_status")
		}
		s.logFailure("UpdateStatus", orderID, err)
		return nil, s.mapTxError("UpdateStatus", err)
	}

	if order == nil {
		s.logger.Info("UpdateStatus: order id=%d already in status=%s", orderID, target)
		return &models.StatusChangeResponse{
			OrderID:        orderID,
			PreviousStatus: previous.String(),
			Status:         target.String(),
		}, nil
	}

	eventType := eventbus.OrderStatusChanged
	if target == domain.StatusCancelled {
		eventType = eventbus.OrderCancelled
	}
	s.afterStatusChange(ctx, order, previous, eventType)

	s.logger.Info("UpdateStatus: order id=%d moved %s -> %s", orderID, previous, target)
	return statusChange(orderID, previous, target), nil
}

// ProcessPaymentSuccess отмечает заказ оплаченным.
// Повторный колбэк для оплаченного заказа ничего не меняет.
func (s *Service) ProcessPaymentSuccess(ctx context.Context, orderID int64) (*models.StatusChangeResponse, error) {
	s.logger.Info("ProcessPaymentSuccess: order id=%d", orderID)

	var order *domain.Order
	var previous domain.OrderStatus

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		o, err := s.lockOrder(txCtx, orderID)
		if err != nil {
			return err
		}

		previous = o.Status
		switch o.Status {
		case domain.StatusPaid:
			return nil
		case domain.StatusCreated, domain.StatusAwaitingPayment:
		default:
			return fmt.Errorf("%w: cannot mark %s order as paid", ErrInvalidTransition, o.Status)
		}

		if err := s.orderRepo.UpdateStatus(txCtx, orderID, domain.StatusPaid); err != nil {
			return fmt.Errorf("%w: ProcessPaymentSuccess - update status: %w", ErrInternal, err)
		}

		o.Status = domain.StatusPaid
		order = o
		return nil
	})
	if err != nil {
		s.logFailure("ProcessPaymentSuccess", orderID, err)
		return nil, s.mapTxError("ProcessPaymentSuccess", err)
	}

	if order == nil {
		s.logger.Info("ProcessPaymentSuccess: order id=%d already paid", orderID)
		return &models.StatusChangeResponse{
			OrderID:        orderID,
			PreviousStatus: previous.String(),
			Status:         domain.StatusPaid.String(),
		}, nil
	}

	s.afterStatusChange(ctx, order, previous, eventbus.OrderStatusChanged)

	s.logger.Info("ProcessPaymentSuccess: order id=%d paid", orderID)
	return statusChange(orderID, previous, domain.StatusPaid), nil
}

// CompleteOverdue переводит закончившиеся заказы в completed.
// Идемпотентна: повторный вызов с тем же временем ничего не меняет.
func (s *Service) CompleteOverdue(ctx context.Context) (int, error) {
	now := s.timeProvider.Now()

	ids, err := s.orderRepo.CompleteOverdue(ctx, now)
	if err != nil {
		s.logger.Error("CompleteOverdue: repository error: %v", err)
		return 0, fmt.Errorf("%w: CompleteOverdue - repository error: %v", ErrInternal, err)
	}

	if len(ids) == 0 {
		return 0, nil
	}

	s.metrics.AddOrdersCompleted(int64(len(ids)))
	for _, id := range ids {
		s.publish(ctx, eventbus.NewStatusChangedEvent(id, "", domain.StatusCompleted, now))
	}

	s.logger.Info("CompleteOverdue: completed %d orders", len(ids))
	return len(ids), nil
}

// lockOrder читает заказ внутри транзакции с блокировкой строки
func (s *Service) lockOrder(txCtx context.Context, orderID int64) (*domain.Order, error) {
	o, err := s.orderRepo.GetByID(txCtx, orderID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("%w: get order id=%d: %w", ErrInternal, orderID, err)
	}
	return o, nil
}

// ensureResourcesFree проверяет, что ресурсы заказа свободны в его окне
func (s *Service) ensureResourcesFree(txCtx context.Context, o *domain.Order) error {
	busy, err := s.checker.BusyResources(txCtx, o.ResourceIDs(), o.OrderDate, o.EndsAt(), &o.ID)
	if err != nil {
		return fmt.Errorf("%w: check availability: %w", ErrInternal, err)
	}
	if len(busy) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(busy))
	for id := range busy {
		ids = append(ids, id)
	}
	return domain.NewResourceUnavailableError(ids...)
}

// attachUser дополняет заказ данными владельца, ошибки UserService не критичны
func (s *Service) attachUser(ctx context.Context, order *domain.Order) {
	if s.userClient == nil {
		return
	}

	user, err := s.userClient.GetUser(ctx, order.UserID)
	if err != nil {
		s.logger.Warn("GetByID: user id=%d not loaded: %v", order.UserID, err)
		return
	}

	order.User = &domain.User{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		CitizenCategory: user.CitizenCategory,
		DiscountPercent: user.DiscountPercent,
	}
}

// afterStatusChange метрики и событие после фиксации транзакции
func (s *Service) afterStatusChange(ctx context.Context, order *domain.Order, previous domain.OrderStatus, eventType eventbus.Type) {
	s.metrics.IncStatusChange(order.Status.String())

	event := eventbus.NewOrderEvent(eventType, order, s.timeProvider.Now())
	event.PreviousStatus = previous.String()
	s.publish(ctx, event)
}

// publish отправляет событие, ошибка не влияет на результат операции
func (s *Service) publish(ctx context.Context, event eventbus.OrderEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.metrics.IncEventFailed(string(event.Type))
		s.logger.Warn("Failed to publish %s for order id=%d: %v", event.Type, event.OrderID, err)
	}
}

func (s *Service) logFailure(op string, orderID int64, err error) {
	switch {
	case errors.Is(err, domain.ErrPersistence), !isDomainError(err):
		s.logger.Error("%s: order id=%d failed: %v", op, orderID, err)
	default:
		s.logger.Warn("%s: order id=%d rejected: %v", op, orderID, err)
	}
}

// mapTxError оставляет бизнес-ошибки как есть, остальное заворачивает в ErrInternal
func (s *Service) mapTxError(op string, err error) error {
	if isDomainError(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}

func isDomainError(err error) bool {
	return errors.Is(err, domain.ErrInvalidRequest) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrResourceUnavailable) ||
		errors.Is(err, domain.ErrInvalidTransition) ||
		errors.Is(err, domain.ErrAccessDenied) ||
		errors.Is(err, domain.ErrPersistence)
}

func statusChange(orderID int64, from, to domain.OrderStatus) *models.StatusChangeResponse {
	return &models.StatusChangeResponse{
		OrderID:        orderID,
		PreviousStatus: from.String(),
		Status:         to.String(),
		Changed:        from != to,
	}
}
