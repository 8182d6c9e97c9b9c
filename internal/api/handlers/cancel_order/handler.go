package cancel_order

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/orders"
)

const (
	msgInvalidOrderID = "некорректный ID заказа"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgNotFound       = "заказ не найден"
	msgForbidden      = "доступ запрещен"
	msgCannotCancel   = "заказ не может быть отменен в текущем статусе"
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

// Handle PATCH /api/v1/orders/{orderId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID, err := handlers.PathInt64(r, "orderId")
	if err != nil {
		h.logger.Warn("PATCH /orders/{id}/cancel - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /orders/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Отменяем заказ
	result, err := h.service.Cancel(r.Context(), orderID, userID)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			h.logger.Warn("PATCH /orders/{id}/cancel - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, orders.ErrAccessDenied):
			h.logger.Warn("PATCH /orders/{id}/cancel - Access denied: order_id=%d, user_id=%d", orderID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, orders.ErrCannotCancel):
			h.logger.Warn("PATCH /orders/{id}/cancel - Cannot cancel: order_id=%d, %v", orderID, err)
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("PATCH /orders/{id}/cancel - Failed to cancel order: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /orders/{id}/cancel - Order cancelled: order_id=%d, user_id=%d", orderID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
