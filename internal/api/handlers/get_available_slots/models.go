package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date        string          `json:"date"`
	ServiceID   int64           `json:"serviceId"`
	ServiceName string          `json:"serviceName"`
	PeopleCount int             `json:"peopleCount"`
	Slots       []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Start             time.Time `json:"start"`
	StartTime         string    `json:"startTime"` // "10:00" по времени площадки
	DurationMinutes   int       `json:"durationMinutes"`
	FreeResources     int       `json:"freeResources"`
	TotalResources    int       `json:"totalResources"`
	RequiredResources int       `json:"requiredResources"`
	FreeCapacity      int       `json:"freeCapacity"`
	Bookable          bool      `json:"bookable"`
	OccupancyRate     float64   `json:"occupancyRate"`
}

// ToUseCaseRequest формирует запрос к use case, дата в часовом поясе площадки
func ToUseCaseRequest(serviceID int64, dateStr string, people int, loc *time.Location) (*getAvailableSlots.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ServiceID:   serviceID,
		Date:        date,
		PeopleCount: people,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response, loc *time.Location) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i := range resp.Slots {
		s := &resp.Slots[i]
		slots[i] = AvailableSlot{
			Start:             s.Start.In(loc),
			StartTime:         s.StartTime.String(),
			DurationMinutes:   s.DurationMinutes,
			FreeResources:     s.FreeResources,
			TotalResources:    s.TotalResources,
			RequiredResources: s.RequiredResources,
			FreeCapacity:      s.FreeCapacity,
			Bookable:          s.IsBookable(),
			OccupancyRate:     s.OccupancyRate(),
		}
	}

	return &AvailableSlotsResponse{
		Date:        resp.Date.Format(domain.DateFormat),
		ServiceID:   resp.Service.ID,
		ServiceName: resp.Service.Name,
		PeopleCount: resp.PeopleCount,
		Slots:       slots,
	}
}
