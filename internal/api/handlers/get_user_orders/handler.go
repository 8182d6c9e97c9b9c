package get_user_orders

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/orders"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/orders/models"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/users/{userId}/orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		h.logger.Warn("GET /users/{id}/orders - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/orders - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.GetUserOrders(r.Context(), &models.GetUserOrdersRequest{
		RequesterID: requesterID,
		IsAdmin:     middleware.IsAdmin(r.Context()),
		UserID:      userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrAccessDenied):
			h.logger.Warn("GET /users/{id}/orders - Access denied: user_id=%d, requester=%d", userID, requesterID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, orders.ErrInvalidInput):
			h.logger.Warn("GET /users/{id}/orders - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidUserID)

		default:
			h.logger.Error("GET /users/{id}/orders - Failed to get orders: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{id}/orders - user_id=%d, count=%d", userID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
