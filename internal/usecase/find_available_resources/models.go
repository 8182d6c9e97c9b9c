package find_available_resources

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// Request модель запроса на подбор свободных ресурсов
type Request struct {
	ServiceID       int64     // ID услуги
	Start           time.Time // Начало окна
	DurationMinutes int       // Длительность, 0 - длительность услуги
	PeopleCount     int       // Количество гостей
}

// Response свободные ресурсы окна
type Response struct {
	Service         *domain.Service
	Start           time.Time
	End             time.Time
	DurationMinutes int
	PeopleCount     int

	// Все свободные ресурсы, независимо от вместимости
	FreeResources []domain.Resource
	// Максимальная вместимость среди свободных ресурсов
	MaxCapacity int
	// ceil(PeopleCount / MaxCapacity), 0 если свободных нет
	RequiredResourceCount int
}

// Contains проверяет, что ресурс свободен
func (r *Response) Contains(resourceID int64) bool {
	for _, res := range r.FreeResources {
		if res.ID == resourceID {
			return true
		}
	}
	return false
}

// Resources возвращает свободные ресурсы с указанными ID
func (r *Response) Resources(ids []int64) []domain.Resource {
	result := make([]domain.Resource, 0, len(ids))
	for _, id := range ids {
		for _, res := range r.FreeResources {
			if res.ID == id {
				result = append(result, res)
				break
			}
		}
	}
	return result
}

// FreeCapacity суммарная вместимость свободных ресурсов
func (r *Response) FreeCapacity() int {
	return domain.TotalCapacity(r.FreeResources)
}
