package find_available_resources

import (
	"time"

	findResources "github.com/m04kA/SMC-VenueBookingService/internal/usecase/find_available_resources"
)

// ResourceResponse HTTP модель ресурса
type ResourceResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// AvailableResourcesResponse HTTP response model
type AvailableResourcesResponse struct {
	ServiceID             int64              `json:"serviceId"`
	Start                 time.Time          `json:"start"`
	End                   time.Time          `json:"end"`
	DurationMinutes       int                `json:"durationMinutes"`
	PeopleCount           int                `json:"peopleCount"`
	Resources             []ResourceResponse `json:"resources"`
	MaxCapacity           int                `json:"maxCapacity"`
	FreeCapacity          int                `json:"freeCapacity"`
	RequiredResourceCount int                `json:"requiredResourceCount"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *findResources.Response, loc *time.Location) *AvailableResourcesResponse {
	resources := make([]ResourceResponse, len(resp.FreeResources))
	for i, r := range resp.FreeResources {
		resources[i] = ResourceResponse{ID: r.ID, Name: r.Name, Capacity: r.Capacity}
	}

	return &AvailableResourcesResponse{
		ServiceID:             resp.Service.ID,
		Start:                 resp.Start.In(loc),
		End:                   resp.End.In(loc),
		DurationMinutes:       resp.DurationMinutes,
		PeopleCount:           resp.PeopleCount,
		Resources:             resources,
		MaxCapacity:           resp.MaxCapacity,
		FreeCapacity:          resp.FreeCapacity(),
		RequiredResourceCount: resp.RequiredResourceCount,
	}
}
