package payment_success

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/orders"
)

const (
	msgInvalidOrderID    = "некорректный ID заказа"
	msgNotFound          = "заказ не найден"
	msgInvalidTransition = "заказ не может быть оплачен в текущем статусе"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/internal/payments/{orderId}/success
// Колбэк платёжного провайдера, повторный вызов безопасен.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID, err := handlers.PathInt64(r, "orderId")
	if err != nil {
		h.logger.Warn("POST /internal/payments/{id}/success - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	result, err := h.service.ProcessPaymentSuccess(r.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			h.logger.Warn("POST /internal/payments/{id}/success - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("POST /internal/payments/{id}/success - Rejected: order_id=%d, %v", orderID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("POST /internal/payments/{id}/success - Failed: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /internal/payments/{id}/success - order_id=%d, status=%s, changed=%t",
		orderID, result.Status, result.Changed)
	handlers.RespondJSON(w, http.StatusOK, result)
}
