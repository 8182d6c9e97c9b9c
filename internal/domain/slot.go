package domain

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// AvailableSlot represents a bookable start time within a service day
type AvailableSlot struct {
	Start             time.Time        // UTC instant
	StartTime         types.TimeString // venue-local time of day
	DurationMinutes   int
	FreeResources     int
	TotalResources    int
	RequiredResources int // resources needed for the requested headcount
	FreeCapacity      int
	PeopleCount       int
	BestCapacity      int // capacity of the RequiredResources largest free resources
}

// IsBookable returns true if enough free resources exist and the largest of them seat the headcount
func (s *AvailableSlot) IsBookable() bool {
	return s.RequiredResources > 0 &&
		s.FreeResources >= s.RequiredResources &&
		s.BestCapacity >= s.PeopleCount
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *AvailableSlot) OccupancyRate() float64 {
	if s.TotalResources == 0 {
		return 0
	}
	occupied := s.TotalResources - s.FreeResources
	return float64(occupied) / float64(s.TotalResources) * 100
}
