package payment_success

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/service/orders/models"
)

type PaymentService interface {
	ProcessPaymentSuccess(ctx context.Context, orderID int64) (*models.StatusChangeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
