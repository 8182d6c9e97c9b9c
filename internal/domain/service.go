package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// Service represents a bookable offering of the venue (bowling, karaoke, billiards)
type Service struct {
	ID              int64
	Name            string
	Description     *string
	DurationMinutes int
	WeekdayPrice    decimal.Decimal // hourly rate Monday-Friday
	WeekendPrice    decimal.Decimal // hourly rate Saturday-Sunday
	StartTime       types.TimeString
	EndTime         types.TimeString
}

// Duration returns the fixed booking duration
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// OpeningHours returns opening and closing instants of the venue-local day containing t
func (s *Service) OpeningHours(t time.Time, loc *time.Location) (openAt, closeAt time.Time, err error) {
	openAt, err = s.StartTime.OnDate(t, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	closeAt, err = s.EndTime.OnDate(t, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return openAt, closeAt, nil
}

// FitsOperatingHours reports whether [start, start+durationMinutes) lies within
// the service hours of the venue-local day of start
func (s *Service) FitsOperatingHours(start time.Time, durationMinutes int, loc *time.Location) bool {
	if durationMinutes <= 0 {
		return false
	}
	openAt, closeAt, err := s.OpeningHours(start, loc)
	if err != nil {
		return false
	}
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	return !start.Before(openAt) && !end.After(closeAt)
}

// Resource represents a concrete bookable unit (lane, room, table)
type Resource struct {
	ID        int64
	ServiceID int64
	Name      string
	Capacity  int
}

// MaxCapacity returns the largest capacity among resources, 0 for an empty list
func MaxCapacity(resources []Resource) int {
	maxCap := 0
	for _, r := range resources {
		if r.Capacity > maxCap {
			maxCap = r.Capacity
		}
	}
	return maxCap
}

// TotalCapacity returns the summed capacity of resources
func TotalCapacity(resources []Resource) int {
	total := 0
	for _, r := range resources {
		total += r.Capacity
	}
	return total
}

// LargestCapacity returns the summed capacity of the n largest resources
func LargestCapacity(resources []Resource, n int) int {
	caps := make([]int, len(resources))
	for i, r := range resources {
		caps[i] = r.Capacity
	}
	sort.Sort(sort.Reverse(sort.IntSlice(caps)))

	total := 0
	for i := 0; i < n && i < len(caps); i++ {
		total += caps[i]
	}
	return total
}

// RequiredResourceCount returns ceil(peopleCount / maxCapacity).
// Returns 0 when nothing can host people.
func RequiredResourceCount(peopleCount, maxCapacity int) int {
	if peopleCount <= 0 || maxCapacity <= 0 {
		return 0
	}
	return (peopleCount + maxCapacity - 1) / maxCapacity
}

// Overlaps strict half-open interval test: touching intervals do not overlap
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// IsWeekend reports whether t falls on Saturday or Sunday in loc
func IsWeekend(t time.Time, loc *time.Location) bool {
	switch t.In(loc).Weekday() {
	case time.Saturday, time.Sunday:
		return true
	default:
		return false
	}
}
