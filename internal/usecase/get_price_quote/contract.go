package get_price_quote

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/pricing"
)

// CatalogReader чтение услуг
type CatalogReader interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
}

// PricingEngine расчёт стоимости
type PricingEngine interface {
	Quote(service *domain.Service, start time.Time, durationMinutes int, extras []string, discountPercent decimal.Decimal) (pricing.Quote, error)
	Catalog() domain.ExtrasCatalog
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetDiscountPercent(ctx context.Context, userID int64) decimal.Decimal
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
