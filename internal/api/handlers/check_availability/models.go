package check_availability

import (
	"time"

	checkAvailability "github.com/m04kA/SMC-VenueBookingService/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ServiceID       int64     `json:"serviceId"`
	Available       bool      `json:"available"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"durationMinutes"`
	OpensAt         time.Time `json:"opensAt"`
	ClosesAt        time.Time `json:"closesAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response, loc *time.Location) *AvailabilityResponse {
	return &AvailabilityResponse{
		ServiceID:       resp.ServiceID,
		Available:       resp.Available,
		Start:           resp.Start.In(loc),
		End:             resp.End.In(loc),
		DurationMinutes: resp.DurationMinutes,
		OpensAt:         resp.OpensAt.In(loc),
		ClosesAt:        resp.ClosesAt.In(loc),
	}
}
