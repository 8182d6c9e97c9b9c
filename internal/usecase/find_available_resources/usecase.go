package find_available_resources

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/catalog"
)

// UseCase подбор свободных ресурсов услуги на окно [start, start+duration).
// Возвращает все свободные ресурсы и сколько из них нужно под количество гостей.
// Внутри транзакции вызывающего читает через неё.
type UseCase struct {
	catalog CatalogReader
	checker AvailabilityChecker
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(catalog CatalogReader, checker AvailabilityChecker, logger Logger) *UseCase {
	return &UseCase{
		catalog: catalog,
		checker: checker,
		logger:  logger,
	}
}

// Execute выполняет подбор ресурсов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FindAvailableResources: service=%d, start=%s, duration=%d, people=%d",
		req.ServiceID, req.Start.Format(time.RFC3339), req.DurationMinutes, req.PeopleCount)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("FindAvailableResources: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу
	service, err := uc.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("FindAvailableResources: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("FindAvailableResources: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = service.DurationMinutes
	}
	start := req.Start.UTC()
	end := start.Add(time.Duration(duration) * time.Minute)

	// 3. Получаем ресурсы услуги
	resources, err := uc.catalog.GetResourcesForService(ctx, req.ServiceID)
	if err != nil {
		uc.logger.Error("FindAvailableResources: failed to get resources of service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get resources: %w", ErrInternal, err)
	}

	resp := &Response{
		Service:         service,
		Start:           start,
		End:             end,
		DurationMinutes: duration,
		PeopleCount:     req.PeopleCount,
		FreeResources:   []domain.Resource{},
	}

	if len(resources) == 0 {
		uc.logger.Info("FindAvailableResources: service id=%d has no resources", req.ServiceID)
		return resp, nil
	}

	// 4. Проверяем занятость каждого ресурса
	ids := make([]int64, len(resources))
	for i, r := range resources {
		ids[i] = r.ID
	}

	busy, err := uc.checker.BusyResources(ctx, ids, start, end, nil)
	if err != nil {
		uc.logger.Error("FindAvailableResources: availability check failed: %v", err)
		return nil, fmt.Errorf("%w: availability check: %w", ErrInternal, err)
	}

	for _, r := range resources {
		if !busy[r.ID] {
			resp.FreeResources = append(resp.FreeResources, r)
		}
	}

	// 5. Считаем, сколько ресурсов нужно под гостей
	resp.MaxCapacity = domain.MaxCapacity(resp.FreeResources)
	resp.RequiredResourceCount = domain.RequiredResourceCount(req.PeopleCount, resp.MaxCapacity)

	uc.logger.Info("FindAvailableResources: service=%d, %d/%d free, maxCapacity=%d, required=%d",
		req.ServiceID, len(resp.FreeResources), len(resources), resp.MaxCapacity, resp.RequiredResourceCount)

	return resp, nil
}
