package list_services

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

type CatalogReader interface {
	ListServices(ctx context.Context) ([]domain.Service, error)
	GetResourcesForService(ctx context.Context, serviceID int64) ([]domain.Resource, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
