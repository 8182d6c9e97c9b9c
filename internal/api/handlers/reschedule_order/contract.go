package reschedule_order

import (
	"context"

	rescheduleOrder "github.com/m04kA/SMC-VenueBookingService/internal/usecase/reschedule_order"
)

type RescheduleOrderUseCase interface {
	Execute(ctx context.Context, req *rescheduleOrder.Request) (*rescheduleOrder.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
