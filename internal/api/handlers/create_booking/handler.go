package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-VenueBookingService/internal/usecase/create_booking"
)

const (
	msgUnauthorized         = "не удалось определить пользователя"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidStart         = "некорректное время начала, ожидается RFC3339 или YYYY-MM-DDTHH:MM"
	msgResourcesUnavailable = "выбранные ресурсы заняты на это время"
	msgServiceNotFound      = "услуга не найдена"
	msgInvalidDuration      = "длительность должна совпадать с длительностью услуги"
	msgOutsideHours         = "время вне часов работы услуги"
	msgStartInPast          = "нельзя забронировать прошедшее время"
	msgWrongResourceCount   = "число ресурсов не соответствует количеству гостей"
	msgInvalidBooking       = "некорректные параметры бронирования"
)

type Handler struct {
	useCase BookingCreator
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase BookingCreator, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle POST /api/v1/orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /orders - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /orders - Validation failed: user_id=%d, %v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	start, err := handlers.ParseInstant(req.Start, h.loc)
	if err != nil {
		h.logger.Warn("POST /orders - Invalid start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID, start))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrResourceUnavailable):
			ids := domain.UnavailableResourceIDs(err)
			h.logger.Warn("POST /orders - Resources unavailable: user_id=%d, service_id=%d, resources=%v",
				userID, req.ServiceID, ids)
			handlers.RespondConflictResources(w, msgResourcesUnavailable, ids)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /orders - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrInvalidDuration):
			h.logger.Warn("POST /orders - Invalid duration: user_id=%d, duration=%d", userID, req.DurationMinutes)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, createBooking.ErrOutsideOperatingHours):
			h.logger.Warn("POST /orders - Outside operating hours: user_id=%d, service_id=%d", userID, req.ServiceID)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createBooking.ErrStartInPast):
			h.logger.Warn("POST /orders - Start in the past: user_id=%d, service_id=%d", userID, req.ServiceID)
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, createBooking.ErrWrongResourceCount):
			h.logger.Warn("POST /orders - Wrong resource count: user_id=%d, people=%d, resources=%d",
				userID, req.PeopleCount, len(req.ResourceIDs))
			handlers.RespondBadRequest(w, msgWrongResourceCount)

		case errors.Is(err, domain.ErrInvalidRequest):
			h.logger.Warn("POST /orders - Invalid booking: user_id=%d, %v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidBooking)

		default:
			h.logger.Error("POST /orders - Failed to create booking: user_id=%d, service_id=%d, error=%v",
				userID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /orders - Order created: order_id=%d, user_id=%d, service_id=%d, total=%s",
		result.Order.ID, userID, req.ServiceID, result.Quote.Total.StringFixed(2))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result, h.loc))
}
