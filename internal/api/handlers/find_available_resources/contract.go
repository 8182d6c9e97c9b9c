package find_available_resources

import (
	"context"

	findResources "github.com/m04kA/SMC-VenueBookingService/internal/usecase/find_available_resources"
)

type FindAvailableResourcesUseCase interface {
	Execute(ctx context.Context, req *findResources.Request) (*findResources.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
