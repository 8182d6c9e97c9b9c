package reschedule_order

import (
	"time"

	ordersModels "github.com/m04kA/SMC-VenueBookingService/internal/service/orders/models"
	rescheduleOrder "github.com/m04kA/SMC-VenueBookingService/internal/usecase/reschedule_order"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	Start string `json:"start" validate:"required"` // RFC3339 или "2025-10-15T14:00"
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	*ordersModels.OrderResponse
	PreviousStart time.Time `json:"previousStart"`
	PreviousPrice string    `json:"previousPrice"`
	Repriced      bool      `json:"repriced"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleOrder.Response, loc *time.Location) *RescheduleResponse {
	return &RescheduleResponse{
		OrderResponse: ordersModels.FromDomainOrder(resp.Order, loc),
		PreviousStart: resp.PreviousStart.In(loc),
		PreviousPrice: resp.PreviousPrice.StringFixed(2),
		Repriced:      resp.Repriced,
	}
}
