package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statistics aggregated booking figures for a period.
// Revenue counts every non-cancelled order regardless of payment state.
type Statistics struct {
	From time.Time
	To   time.Time

	TotalOrders       int
	CancelledOrders   int
	CompletedOrders   int
	OrdersByStatus    map[OrderStatus]int
	TotalRevenue      decimal.Decimal
	AverageOrderValue decimal.Decimal // TotalRevenue / revenue-bearing orders
	RevenueByService  []ServiceRevenue
	RevenueByDay      []DayRevenue
}

// ServiceRevenue revenue of one service within the period
type ServiceRevenue struct {
	ServiceID   int64
	ServiceName string
	Orders      int
	Revenue     decimal.Decimal
}

// DayRevenue revenue of one venue-local day
type DayRevenue struct {
	Date    string // YYYY-MM-DD
	Orders  int
	Revenue decimal.Decimal
}

// CountsTowardRevenue returns true if the order contributes to revenue figures
func (o *Order) CountsTowardRevenue() bool {
	return o.Status != StatusCancelled
}
