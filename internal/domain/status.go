package domain

import (
	"fmt"
	"strings"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	StatusCreated         OrderStatus = "created"
	StatusAwaitingPayment OrderStatus = "awaiting_payment"
	StatusPaid            OrderStatus = "paid"
	StatusConfirmed       OrderStatus = "confirmed"
	StatusCompleted       OrderStatus = "completed"
	StatusCancelled       OrderStatus = "cancelled"
)

// AllStatuses every known status in lifecycle order
var AllStatuses = []OrderStatus{
	StatusCreated,
	StatusAwaitingPayment,
	StatusPaid,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}

// AdminSettableStatuses statuses an administrator may set explicitly
var AdminSettableStatuses = []OrderStatus{
	StatusAwaitingPayment,
	StatusPaid,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}

// CustomerCancellableStatuses statuses from which the owner may cancel
var CustomerCancellableStatuses = []OrderStatus{
	StatusCreated,
	StatusAwaitingPayment,
}

// TerminalStatuses statuses with no further automatic transitions
var TerminalStatuses = []OrderStatus{
	StatusCompleted,
	StatusCancelled,
}

// ParseOrderStatus converts external input into a known status
func ParseOrderStatus(s string) (OrderStatus, error) {
	normalized := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, st := range AllStatuses {
		if st == normalized {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown order status %q", ErrInvalidRequest, s)
}

// IsValid returns true for known statuses
func (s OrderStatus) IsValid() bool {
	return s.in(AllStatuses)
}

// IsTerminal returns true for completed and cancelled
func (s OrderStatus) IsTerminal() bool {
	return s.in(TerminalStatuses)
}

// IsAdminSettable returns true if an administrator may set this status
func (s OrderStatus) IsAdminSettable() bool {
	return s.in(AdminSettableStatuses)
}

// IsCustomerCancellable returns true if the owner may cancel from this status
func (s OrderStatus) IsCustomerCancellable() bool {
	return s.in(CustomerCancellableStatuses)
}

// OccupiesCalendar returns true if orders in this status hold their resources
func (s OrderStatus) OccupiesCalendar() bool {
	return s != StatusCancelled
}

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) in(list []OrderStatus) bool {
	for _, st := range list {
		if st == s {
			return true
		}
	}
	return false
}

// StatusStrings converts statuses to plain strings (for SQL filters)
func StatusStrings(statuses []OrderStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
