package reschedule_order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// Request запрос на перенос заказа
type Request struct {
	OrderID     int64
	RequesterID int64
	IsAdmin     bool
	NewStart    time.Time
}

// Response результат переноса
type Response struct {
	Order         *domain.Order
	PreviousStart time.Time
	PreviousPrice decimal.Decimal
	Repriced      bool
}
