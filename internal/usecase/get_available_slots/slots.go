package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// generateSlotStarts генерирует начала слотов на день.
// Слоты идут от открытия с шагом step, пока слот длительностью duration
// заканчивается не позже закрытия. Уже начавшиеся слоты отбрасываются.
func generateSlotStarts(openAt, closeAt time.Time, duration, step time.Duration, now time.Time) []time.Time {
	starts := make([]time.Time, 0)
	if step <= 0 || duration <= 0 {
		return starts
	}

	for slot := openAt; !slot.Add(duration).After(closeAt); slot = slot.Add(step) {
		if slot.Before(now) {
			continue
		}
		starts = append(starts, slot)
	}

	return starts
}

// buildSlots считает свободные ресурсы для каждого слота
func buildSlots(
	starts []time.Time,
	duration time.Duration,
	resources []domain.Resource,
	busy []domain.BusyInterval,
	peopleCount int,
	loc *time.Location,
) []domain.AvailableSlot {
	result := make([]domain.AvailableSlot, len(starts))

	for i, start := range starts {
		end := start.Add(duration)
		free := freeResources(start, end, resources, busy)
		required := domain.RequiredResourceCount(peopleCount, domain.MaxCapacity(free))

		result[i] = domain.AvailableSlot{
			Start:             start.UTC(),
			StartTime:         types.NewTimeString(start.In(loc)),
			DurationMinutes:   int(duration / time.Minute),
			FreeResources:     len(free),
			TotalResources:    len(resources),
			RequiredResources: required,
			FreeCapacity:      domain.TotalCapacity(free),
			PeopleCount:       peopleCount,
			BestCapacity:      domain.LargestCapacity(free, required),
		}
	}

	return result
}

// freeResources возвращает ресурсы без пересечений с окном [start, end).
// Занятость, которая заканчивается ровно в начале окна или начинается ровно в его конце, не мешает.
func freeResources(start, end time.Time, resources []domain.Resource, busy []domain.BusyInterval) []domain.Resource {
	taken := make(map[int64]bool)
	for _, b := range busy {
		if domain.Overlaps(start, end, b.Start, b.End) {
			taken[b.ResourceID] = true
		}
	}

	free := make([]domain.Resource, 0, len(resources))
	for _, r := range resources {
		if !taken[r.ID] {
			free = append(free, r)
		}
	}
	return free
}

// venueDay возвращает полночь дня date в часовом поясе площадки
func venueDay(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(day, now time.Time) bool {
	nowOnly := venueDay(now.In(day.Location()), day.Location())
	return day.Before(nowOnly)
}
