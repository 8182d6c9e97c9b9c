package force_cancel_order

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/orders"
)

const (
	msgInvalidOrderID = "некорректный ID заказа"
	msgNotFound       = "заказ не найден"
	msgAlreadyClosed  = "заказ уже завершен или отменен"
)

type Handler struct {
	service OrderService
	logger  Logger
}

func NewHandler(service OrderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/orders/{orderId}/force-cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID, err := handlers.PathInt64(r, "orderId")
	if err != nil {
		h.logger.Warn("POST /admin/orders/{id}/force-cancel - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	result, err := h.service.ForceCancel(r.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			h.logger.Warn("POST /admin/orders/{id}/force-cancel - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("POST /admin/orders/{id}/force-cancel - Rejected: order_id=%d, %v", orderID, err)
			handlers.RespondConflict(w, msgAlreadyClosed)

		default:
			h.logger.Error("POST /admin/orders/{id}/force-cancel - Failed: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/orders/{id}/force-cancel - Order cancelled: order_id=%d, previous=%s",
		orderID, result.PreviousStatus)
	handlers.RespondJSON(w, http.StatusOK, result)
}
