package find_available_resources

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	findResources "github.com/m04kA/SMC-VenueBookingService/internal/usecase/find_available_resources"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidStart     = "некорректное время начала, ожидается RFC3339 или YYYY-MM-DDTHH:MM"
	msgInvalidParams    = "некорректные параметры запроса"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase FindAvailableResourcesUseCase
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase FindAvailableResourcesUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/available-resources?start=&duration=&people=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := handlers.PathInt64(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /services/{id}/available-resources - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	q := r.URL.Query()
	start, err := handlers.ParseInstant(q.Get("start"), h.loc)
	if err != nil {
		h.logger.Warn("GET /services/{id}/available-resources - Invalid start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	duration, err := handlers.QueryInt(q, "duration", 0)
	if err != nil {
		h.logger.Warn("GET /services/{id}/available-resources - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	people, err := handlers.QueryInt(q, "people", 1)
	if err != nil {
		h.logger.Warn("GET /services/{id}/available-resources - Invalid people: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &findResources.Request{
		ServiceID:       serviceID,
		Start:           start,
		DurationMinutes: duration,
		PeopleCount:     people,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("GET /services/{id}/available-resources - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, domain.ErrInvalidRequest):
			h.logger.Warn("GET /services/{id}/available-resources - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /services/{id}/available-resources - Failed to find resources: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services/{id}/available-resources - service_id=%d, free=%d, required=%d",
		serviceID, len(result.FreeResources), result.RequiredResourceCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, h.loc))
}
