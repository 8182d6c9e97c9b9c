package eventbus

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// Type тип события, он же routing key
type Type string

const (
	OrderCreated       Type = "order.created"
	OrderCancelled     Type = "order.cancelled"
	OrderRescheduled   Type = "order.rescheduled"
	OrderStatusChanged Type = "order.status_changed"
)

// OrderEvent событие жизненного цикла заказа
type OrderEvent struct {
	ID             string     `json:"id"`
	Type           Type       `json:"type"`
	OccurredAt     time.Time  `json:"occurredAt"`
	OrderID        int64      `json:"orderId"`
	UserID         int64      `json:"userId,omitempty"`
	ServiceID      int64      `json:"serviceId,omitempty"`
	Status         string     `json:"status,omitempty"`
	PreviousStatus string     `json:"previousStatus,omitempty"`
	OrderDate      *time.Time `json:"orderDate,omitempty"`
	TotalPrice     string     `json:"totalPrice,omitempty"`
	ResourceIDs    []int64    `json:"resourceIds,omitempty"`
}

// NewOrderEvent строит событие по состоянию заказа
func NewOrderEvent(eventType Type, order *domain.Order, occurredAt time.Time) OrderEvent {
	orderDate := order.OrderDate.UTC()
	return OrderEvent{
		ID:          uuid.NewString(),
		Type:        eventType,
		OccurredAt:  occurredAt.UTC(),
		OrderID:     order.ID,
		UserID:      order.UserID,
		ServiceID:   order.ServiceID,
		Status:      order.Status.String(),
		OrderDate:   &orderDate,
		TotalPrice:  order.TotalPrice.StringFixed(2),
		ResourceIDs: order.ResourceIDs(),
	}
}

// NewStatusChangedEvent строит событие смены статуса, когда заказ целиком не загружен
func NewStatusChangedEvent(orderID int64, from, to domain.OrderStatus, occurredAt time.Time) OrderEvent {
	return OrderEvent{
		ID:             uuid.NewString(),
		Type:           OrderStatusChanged,
		OccurredAt:     occurredAt.UTC(),
		OrderID:        orderID,
		Status:         to.String(),
		PreviousStatus: from.String(),
	}
}
