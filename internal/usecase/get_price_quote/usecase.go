package get_price_quote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	catalogRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/catalog"
)

// UseCase предварительный расчёт стоимости бронирования без его создания
type UseCase struct {
	catalog    CatalogReader
	pricing    PricingEngine
	userClient UserServiceClient
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(catalog CatalogReader, pricing PricingEngine, userClient UserServiceClient, logger Logger) *UseCase {
	return &UseCase{
		catalog:    catalog,
		pricing:    pricing,
		userClient: userClient,
		logger:     logger,
	}
}

// Execute считает стоимость по тем же правилам, что и создание бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetPriceQuote: service=%d, start=%s, extras=%v, user=%d",
		req.ServiceID, req.Start.Format(time.RFC3339), req.Extras, req.UserID)

	// 1. Валидация входных данных
	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.Start.IsZero() {
		return nil, fmt.Errorf("%w: start is required", ErrInvalidInput)
	}

	extras, err := uc.pricing.Catalog().Normalize(req.Extras)
	if err != nil {
		uc.logger.Warn("GetPriceQuote: invalid extras %v: %v", req.Extras, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Получаем услугу
	service, err := uc.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetPriceQuote: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetPriceQuote: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Скидка только для известного пользователя
	discount := decimal.Zero
	if req.UserID > 0 {
		discount = uc.userClient.GetDiscountPercent(ctx, req.UserID)
	}

	// 4. Считаем стоимость
	quote, err := uc.pricing.Quote(service, req.Start, service.DurationMinutes, extras, discount)
	if err != nil {
		uc.logger.Warn("GetPriceQuote: pricing failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	start := req.Start.UTC()
	return &Response{
		Service: service,
		Start:   start,
		End:     start.Add(service.Duration()),
		Quote:   quote,
	}, nil
}
