package reschedule_order

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	rescheduleOrder "github.com/m04kA/SMC-VenueBookingService/internal/usecase/reschedule_order"
)

const (
	msgInvalidOrderID       = "некорректный ID заказа"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidStart         = "некорректное время начала, ожидается RFC3339 или YYYY-MM-DDTHH:MM"
	msgNotFound             = "заказ не найден"
	msgForbidden            = "доступ запрещен"
	msgCannotReschedule     = "заказ не может быть перенесен в текущем статусе"
	msgOutsideHours         = "время вне часов работы услуги"
	msgStartInPast          = "нельзя перенести заказ на прошедшее время"
	msgResourcesUnavailable = "ресурсы заказа заняты на новое время"
	msgInvalidReschedule    = "некорректные параметры переноса"
)

type Handler struct {
	useCase RescheduleOrderUseCase
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase RescheduleOrderUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/orders/{orderId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID, err := handlers.PathInt64(r, "orderId")
	if err != nil {
		h.logger.Warn("PATCH /orders/{id}/reschedule - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /orders/{id}/reschedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /orders/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PATCH /orders/{id}/reschedule - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	start, err := handlers.ParseInstant(req.Start, h.loc)
	if err != nil {
		h.logger.Warn("PATCH /orders/{id}/reschedule - Invalid start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &rescheduleOrder.Request{
		OrderID:     orderID,
		RequesterID: userID,
		IsAdmin:     middleware.IsAdmin(r.Context()),
		NewStart:    start,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrResourceUnavailable):
			ids := domain.UnavailableResourceIDs(err)
			h.logger.Warn("PATCH /orders/{id}/reschedule - Resources unavailable: order_id=%d, resources=%v", orderID, ids)
			handlers.RespondConflictResources(w, msgResourcesUnavailable, ids)

		case errors.Is(err, rescheduleOrder.ErrOrderNotFound):
			h.logger.Warn("PATCH /orders/{id}/reschedule - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleOrder.ErrAccessDenied):
			h.logger.Warn("PATCH /orders/{id}/reschedule - Access denied: order_id=%d, user_id=%d", orderID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("PATCH /orders/{id}/reschedule - Cannot reschedule: order_id=%d, %v", orderID, err)
			handlers.RespondConflict(w, msgCannotReschedule)

		case errors.Is(err, rescheduleOrder.ErrOutsideOperatingHours):
			h.logger.Warn("PATCH /orders/{id}/reschedule - Outside operating hours: order_id=%d", orderID)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, rescheduleOrder.ErrStartInPast):
			h.logger.Warn("PATCH /orders/{id}/reschedule - Start in the past: order_id=%d", orderID)
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, domain.ErrInvalidRequest):
			h.logger.Warn("PATCH /orders/{id}/reschedule - Invalid request: order_id=%d, %v", orderID, err)
			handlers.RespondBadRequest(w, msgInvalidReschedule)

		default:
			h.logger.Error("PATCH /orders/{id}/reschedule - Failed to reschedule: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /orders/{id}/reschedule - Order rescheduled: order_id=%d, user_id=%d", orderID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, h.loc))
}
