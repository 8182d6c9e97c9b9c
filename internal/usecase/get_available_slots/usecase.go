package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/catalog"
)

// UseCase use case для получения доступных слотов услуги на день
type UseCase struct {
	catalog      CatalogReader
	checker      AvailabilityChecker
	step         time.Duration
	loc          *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// stepMinutes шаг сетки слотов, по умолчанию domain.DefaultSlotStepMinutes.
func NewUseCase(catalog CatalogReader, checker AvailabilityChecker, stepMinutes int, loc *time.Location, logger Logger) *UseCase {
	if stepMinutes <= 0 {
		stepMinutes = domain.DefaultSlotStepMinutes
	}
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{
		catalog:      catalog,
		checker:      checker,
		step:         time.Duration(stepMinutes) * time.Minute,
		loc:          loc,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s, people=%d",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.PeopleCount)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	people := req.PeopleCount
	if people == 0 {
		people = 1
	}

	// 2. Проверяем, что день не в прошлом
	now := uc.timeProvider.Now()
	day := venueDay(req.Date, uc.loc)
	if err := validateDate(day, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем услугу
	service, err := uc.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	resp := &Response{
		Date:        day,
		Service:     service,
		PeopleCount: people,
		Slots:       []domain.AvailableSlot{},
	}

	// 4. Часы работы на этот день
	openAt, closeAt, err := service.OpeningHours(day, uc.loc)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid operating hours of service id=%d: %v", service.ID, err)
		return nil, fmt.Errorf("%w: operating hours: %v", ErrInternal, err)
	}

	// 5. Генерируем временные слоты
	starts := generateSlotStarts(openAt, closeAt, service.Duration(), uc.step, now)
	if len(starts) == 0 {
		uc.logger.Info("GetAvailableSlots: no slots left for service=%d on %s", service.ID, day.Format(domain.DateFormat))
		return resp, nil
	}

	// 6. Получаем ресурсы услуги
	resources, err := uc.catalog.GetResourcesForService(ctx, service.ID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get resources of service id=%d: %v", service.ID, err)
		return nil, fmt.Errorf("%w: failed to get resources: %v", ErrInternal, err)
	}

	// 7. Одним запросом получаем занятость ресурсов за рабочий день
	ids := make([]int64, len(resources))
	for i, r := range resources {
		ids[i] = r.ID
	}

	busy, err := uc.checker.BusyIntervals(ctx, ids, openAt.UTC(), closeAt.UTC(), nil)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get busy intervals: %v", err)
		return nil, fmt.Errorf("%w: failed to get busy intervals: %v", ErrInternal, err)
	}

	// 8. Вычисляем доступность для каждого слота
	resp.Slots = buildSlots(starts, service.Duration(), resources, busy, people, uc.loc)

	uc.logger.Info("GetAvailableSlots: generated %d slots for service=%d, date=%s",
		len(resp.Slots), service.ID, day.Format(domain.DateFormat))

	return resp, nil
}
