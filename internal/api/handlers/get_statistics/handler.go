package get_statistics

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/orders"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/orders/models"
)

const (
	msgInvalidPeriod = "некорректный период, ожидаются from и to"
)

type Handler struct {
	service StatisticsService
	loc     *time.Location
	logger  Logger
}

func NewHandler(service StatisticsService, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		service: service,
		loc:     loc,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/statistics?from=&to=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	from, to, err := handlers.QueryPeriod(r.URL.Query(), h.loc)
	if err != nil || from == nil || to == nil {
		h.logger.Warn("GET /admin/statistics - Invalid period: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.service.GetStatistics(r.Context(), &models.StatisticsRequest{From: *from, To: *to})
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrInvalidInput):
			h.logger.Warn("GET /admin/statistics - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /admin/statistics - Failed to get statistics: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/statistics - orders=%d, revenue=%s", result.TotalOrders, result.TotalRevenue)
	handlers.RespondJSON(w, http.StatusOK, result)
}
