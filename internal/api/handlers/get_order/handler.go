package get_order

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/orders"
)

const (
	msgInvalidOrderID = "некорректный ID заказа"
	msgNotFound       = "заказ не найден"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgForbidden      = "доступ запрещен"
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

// Handle GET /api/v1/orders/{orderId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID, err := handlers.PathInt64(r, "orderId")
	if err != nil {
		h.logger.Warn("GET /orders/{id} - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /orders/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	isAdmin := middleware.IsAdmin(r.Context())

	// Сервис сам проверит права доступа
	order, err := h.service.GetByID(r.Context(), orderID, userID, isAdmin)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			h.logger.Warn("GET /orders/{id} - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, orders.ErrAccessDenied):
			h.logger.Warn("GET /orders/{id} - Access denied: order_id=%d, user_id=%d", orderID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /orders/{id} - Failed to get order: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /orders/{id} - Order retrieved: order_id=%d, user_id=%d", orderID, userID)
	handlers.RespondJSON(w, http.StatusOK, order)
}
