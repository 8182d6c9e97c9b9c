package get_price_quote

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	getPriceQuote "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_price_quote"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidStart     = "некорректное время начала, ожидается RFC3339 или YYYY-MM-DDTHH:MM"
	msgInvalidRequest   = "некорректные параметры запроса"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase GetPriceQuoteUseCase
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase GetPriceQuoteUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/quote?start=&extras=
// X-User-ID необязателен: с ним учитывается персональная скидка
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := handlers.PathInt64(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /services/{id}/quote - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	q := r.URL.Query()
	start, err := handlers.ParseInstant(q.Get("start"), h.loc)
	if err != nil {
		h.logger.Warn("GET /services/{id}/quote - Invalid start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	var userID int64
	if raw := r.Header.Get(middleware.HeaderUserID); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			userID = id
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getPriceQuote.Request{
		ServiceID: serviceID,
		Start:     start,
		Extras:    ParseExtras(q.Get("extras")),
		UserID:    userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("GET /services/{id}/quote - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, domain.ErrInvalidRequest):
			h.logger.Warn("GET /services/{id}/quote - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /services/{id}/quote - Failed to quote: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, h.loc))
}
