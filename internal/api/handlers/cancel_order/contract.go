package cancel_order

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/service/orders/models"
)

type OrderService interface {
	Cancel(ctx context.Context, orderID, userID int64) (*models.StatusChangeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
