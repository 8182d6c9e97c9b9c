package check_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-VenueBookingService/internal/usecase/check_availability"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidStart     = "некорректное время начала, ожидается RFC3339 или YYYY-MM-DDTHH:MM"
	msgInvalidDuration  = "некорректная длительность"
	msgInvalidRequest   = "некорректные параметры запроса"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/availability?start=&duration=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := handlers.PathInt64(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /services/{id}/availability - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	q := r.URL.Query()
	start, err := handlers.ParseInstant(q.Get("start"), h.loc)
	if err != nil {
		h.logger.Warn("GET /services/{id}/availability - Invalid start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	duration, err := handlers.QueryInt(q, "duration", 0)
	if err != nil {
		h.logger.Warn("GET /services/{id}/availability - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{
		ServiceID:       serviceID,
		Start:           start,
		DurationMinutes: duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("GET /services/{id}/availability - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, domain.ErrInvalidRequest):
			h.logger.Warn("GET /services/{id}/availability - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /services/{id}/availability - Failed to check availability: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, h.loc))
}
