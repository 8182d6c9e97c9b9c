package list_services

import (
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// ResourceResponse ресурс услуги
type ResourceResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// ServiceResponse услуга каталога с ресурсами
type ServiceResponse struct {
	ID              int64              `json:"id"`
	Name            string             `json:"name"`
	Description     *string            `json:"description,omitempty"`
	DurationMinutes int                `json:"durationMinutes"`
	WeekdayPrice    string             `json:"weekdayPrice"`
	WeekendPrice    string             `json:"weekendPrice"`
	StartTime       string             `json:"startTime"`
	EndTime         string             `json:"endTime"`
	Resources       []ResourceResponse `json:"resources"`
}

// ServiceListResponse каталог услуг площадки
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainService конвертирует услугу и её ресурсы в HTTP response
func FromDomainService(s domain.Service, resources []domain.Resource) ServiceResponse {
	resp := ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		WeekdayPrice:    s.WeekdayPrice.StringFixed(2),
		WeekendPrice:    s.WeekendPrice.StringFixed(2),
		StartTime:       s.StartTime.String(),
		EndTime:         s.EndTime.String(),
		Resources:       make([]ResourceResponse, 0, len(resources)),
	}
	for _, r := range resources {
		resp.Resources = append(resp.Resources, ResourceResponse{ID: r.ID, Name: r.Name, Capacity: r.Capacity})
	}
	return resp
}
