package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	catalogRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/catalog"
)

// UseCase проверяет, что окно помещается в часы работы услуги.
// Занятость ресурсов не учитывается: для неё есть подбор ресурсов.
type UseCase struct {
	catalog CatalogReader
	loc     *time.Location
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(catalog CatalogReader, loc *time.Location, logger Logger) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{
		catalog: catalog,
		loc:     loc,
		logger:  logger,
	}
}

// Execute выполняет проверку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: service=%d, start=%s, duration=%d",
		req.ServiceID, req.Start.Format(time.RFC3339), req.DurationMinutes)

	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.Start.IsZero() {
		return nil, fmt.Errorf("%w: start is required", ErrInvalidInput)
	}
	if req.DurationMinutes < 0 {
		return nil, fmt.Errorf("%w: duration must not be negative", ErrInvalidInput)
	}

	service, err := uc.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CheckAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = service.DurationMinutes
	}

	openAt, closeAt, err := service.OpeningHours(req.Start, uc.loc)
	if err != nil {
		uc.logger.Error("CheckAvailability: invalid hours of service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: invalid service hours: %v", ErrInternal, err)
	}

	start := req.Start.In(uc.loc)
	resp := &Response{
		ServiceID:       service.ID,
		Available:       service.FitsOperatingHours(req.Start, duration, uc.loc),
		Start:           start,
		End:             start.Add(time.Duration(duration) * time.Minute),
		DurationMinutes: duration,
		OpensAt:         openAt,
		ClosesAt:        closeAt,
	}

	uc.logger.Info("CheckAvailability: service=%d, available=%t", req.ServiceID, resp.Available)
	return resp, nil
}
