package list_services

import (
	"net/http"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
)

type Handler struct {
	catalog CatalogReader
	logger  Logger
}

func NewHandler(catalog CatalogReader, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalog.ListServices(r.Context())
	if err != nil {
		h.logger.Error("GET /services - Failed to list services: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	resp := ServiceListResponse{Services: make([]ServiceResponse, 0, len(services))}
	for _, s := range services {
		resources, err := h.catalog.GetResourcesForService(r.Context(), s.ID)
		if err != nil {
			h.logger.Error("GET /services - Failed to get resources: service_id=%d, error=%v", s.ID, err)
			handlers.RespondInternalError(w)
			return
		}
		resp.Services = append(resp.Services, FromDomainService(s, resources))
	}

	h.logger.Info("GET /services - count=%d", len(resp.Services))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
