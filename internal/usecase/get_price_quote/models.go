package get_price_quote

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/pricing"
)

// Request запрос предварительного расчёта стоимости
type Request struct {
	ServiceID int64
	Start     time.Time
	Extras    []string
	UserID    int64 // 0 - без персональной скидки
}

// Response расчёт стоимости на окно
type Response struct {
	Service *domain.Service
	Start   time.Time
	End     time.Time
	Quote   pricing.Quote
}
