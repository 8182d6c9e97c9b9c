package create_booking

import (
	"context"

	createBooking "github.com/m04kA/SMC-VenueBookingService/internal/usecase/create_booking"
)

// BookingCreator создание заказа с занятием ресурсов
type BookingCreator interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
