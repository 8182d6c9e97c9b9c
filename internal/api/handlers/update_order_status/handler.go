package update_order_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/orders"
)

const (
	msgInvalidOrderID       = "некорректный ID заказа"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidStatus        = "недопустимый статус заказа"
	msgNotFound             = "заказ не найден"
	msgInvalidTransition    = "недопустимая смена статуса"
	msgResourcesUnavailable = "ресурсы заказа уже заняты на это время"
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

// Handle PATCH /api/v1/admin/orders/{orderId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID, err := handlers.PathInt64(r, "orderId")
	if err != nil {
		h.logger.Warn("PATCH /admin/orders/{id}/status - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/orders/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PATCH /admin/orders/{id}/status - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), orderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrResourceUnavailable):
			ids := domain.UnavailableResourceIDs(err)
			h.logger.Warn("PATCH /admin/orders/{id}/status - Resources unavailable: order_id=%d, resources=%v", orderID, ids)
			handlers.RespondConflictResources(w, msgResourcesUnavailable, ids)

		case errors.Is(err, orders.ErrOrderNotFound):
			h.logger.Warn("PATCH /admin/orders/{id}/status - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrInvalidRequest):
			h.logger.Warn("PATCH /admin/orders/{id}/status - Invalid status %q: %v", req.Status, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("PATCH /admin/orders/{id}/status - Invalid transition: order_id=%d, %v", orderID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /admin/orders/{id}/status - Failed to update status: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/orders/{id}/status - order_id=%d, %s -> %s, changed=%t",
		orderID, result.PreviousStatus, result.Status, result.Changed)
	handlers.RespondJSON(w, http.StatusOK, result)
}
