package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order represents a reservation of one or more resources of a service
type Order struct {
	ID              int64
	UserID          int64
	ServiceID       int64
	OrderDate       time.Time // booking start, UTC instant
	TotalPrice      decimal.Decimal
	PeopleCount     int
	Status          OrderStatus
	Extras          []string        // selected extras, kept for re-pricing
	DiscountPercent decimal.Decimal // discount applied at pricing time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Hydrated relations
	Service   *Service
	User      *User
	Resources []Resource
}

// OrderResource binds an order to a resource it occupies for the order's full duration
type OrderResource struct {
	OrderID    int64
	ResourceID int64
}

// User is the order owner as known to the user service
type User struct {
	ID              int64
	Name            string
	Email           string
	CitizenCategory string
	DiscountPercent decimal.Decimal
}

// EndsAt returns the end of the occupied interval. Requires a hydrated Service.
func (o *Order) EndsAt() time.Time {
	if o.Service == nil {
		return o.OrderDate
	}
	return o.OrderDate.Add(o.Service.Duration())
}

// IsActive returns true if the order still holds its resources
func (o *Order) IsActive() bool {
	return o.Status.OccupiesCalendar()
}

// IsOwnedBy returns true if userID placed the order
func (o *Order) IsOwnedBy(userID int64) bool {
	return o.UserID == userID
}

// CanBeCancelledByCustomer returns true if the owner may still cancel the order
func (o *Order) CanBeCancelledByCustomer() bool {
	return o.Status.IsCustomerCancellable()
}

// CanBeRescheduled returns true if the order may be moved to another window
func (o *Order) CanBeRescheduled() bool {
	return !o.Status.IsTerminal()
}

// ResourceIDs returns ids of the linked resources
func (o *Order) ResourceIDs() []int64 {
	ids := make([]int64, len(o.Resources))
	for i, r := range o.Resources {
		ids[i] = r.ID
	}
	return ids
}

// OrdersFilter filter for order listings
type OrdersFilter struct {
	From      *time.Time   // order_date >= From
	To        *time.Time   // order_date <= To
	Status    *OrderStatus // exact status
	UserID    *int64
	ServiceID *int64
	Limit     uint64 // 0 = no limit
	Offset    uint64
}

// BusyInterval occupied window of a resource held by a non-cancelled order
type BusyInterval struct {
	OrderID    int64
	ResourceID int64
	Start      time.Time
	End        time.Time
}
