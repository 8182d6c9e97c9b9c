package list_orders

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/orders"
)

const (
	msgInvalidParams = "некорректные параметры фильтра"
)

type Handler struct {
	service OrderService
	loc     *time.Location
	logger  Logger
}

func NewHandler(service OrderService, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		service: service,
		loc:     loc,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/orders?from=&to=&status=&userId=&serviceId=&limit=&offset=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := ParseQuery(r.URL.Query(), h.loc)
	if err != nil {
		h.logger.Warn("GET /admin/orders - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListOrders(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrInvalidInput):
			h.logger.Warn("GET /admin/orders - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /admin/orders - Failed to list orders: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/orders - count=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
