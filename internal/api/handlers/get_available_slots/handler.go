package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPeople    = "некорректное количество гостей"
	msgDateInPast       = "дата в прошлом"
	msgInvalidRequest   = "некорректные параметры запроса"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase SlotPlanner
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase SlotPlanner, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/available-slots
// Query params: date (required, YYYY-MM-DD), people (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем serviceId из URL
	serviceID, err := handlers.PathInt64(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /services/{id}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /services/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	people, err := handlers.QueryInt(r.URL.Query(), "people", 0)
	if err != nil {
		h.logger.Warn("GET /services/{id}/available-slots - Invalid people: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeople)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(serviceID, dateStr, people, h.loc)
	if err != nil {
		h.logger.Warn("GET /services/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /services/{id}/available-slots - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /services/{id}/available-slots - Date in past: service_id=%d, date=%s", serviceID, dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, domain.ErrInvalidRequest):
			h.logger.Warn("GET /services/{id}/available-slots - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /services/{id}/available-slots - Failed to get slots: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result, h.loc)

	h.logger.Info("GET /services/{id}/available-slots - Slots retrieved successfully: service_id=%d, date=%s, slots_count=%d",
		serviceID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
