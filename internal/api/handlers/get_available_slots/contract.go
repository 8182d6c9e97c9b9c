package get_available_slots

import (
	"context"

	getAvailableSlots "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_available_slots"
)

// SlotPlanner расчёт слотов услуги на день
type SlotPlanner interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
