package get_order

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/service/orders/models"
)

type OrderService interface {
	GetByID(ctx context.Context, orderID, requesterID int64, isAdmin bool) (*models.OrderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
