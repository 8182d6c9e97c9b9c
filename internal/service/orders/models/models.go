package models

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// Request модели

// GetUserOrdersRequest запрос на получение заказов пользователя
type GetUserOrdersRequest struct {
	RequesterID int64 `json:"requesterId"`
	IsAdmin     bool  `json:"isAdmin"`
	UserID      int64 `json:"userId"`
}

// ListOrdersRequest запрос администратора на список заказов
type ListOrdersRequest struct {
	From      *time.Time `json:"from,omitempty"`
	To        *time.Time `json:"to,omitempty"`
	Status    *string    `json:"status,omitempty"`
	UserID    *int64     `json:"userId,omitempty"`
	ServiceID *int64     `json:"serviceId,omitempty"`
	Limit     uint64     `json:"limit,omitempty"`
	Offset    uint64     `json:"offset,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListOrdersRequest) ToDomainFilter() (domain.OrdersFilter, error) {
	filter := domain.OrdersFilter{
		From:      r.From,
		To:        r.To,
		UserID:    r.UserID,
		ServiceID: r.ServiceID,
		Limit:     r.Limit,
		Offset:    r.Offset,
	}

	if r.Status != nil {
		status, err := domain.ParseOrderStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// StatisticsRequest запрос статистики за период [From, To]
type StatisticsRequest struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Response модели

// ServiceInfo краткие данные услуги в заказе
type ServiceInfo struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ResourceInfo ресурс, занятый заказом
type ResourceInfo struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// UserInfo владелец заказа, если UserService ответил
type UserInfo struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email,omitempty"`
	CitizenCategory string `json:"citizenCategory,omitempty"`
}

// OrderResponse ответ с данными заказа. Даты в часовом поясе площадки.
type OrderResponse struct {
	ID              int64          `json:"id"`
	UserID          int64          `json:"userId"`
	ServiceID       int64          `json:"serviceId"`
	OrderDate       time.Time      `json:"orderDate"`
	EndsAt          time.Time      `json:"endsAt"`
	Date            string         `json:"date"`      // "2025-10-15"
	StartTime       string         `json:"startTime"` // "10:00"
	PeopleCount     int            `json:"peopleCount"`
	Status          string         `json:"status"`
	TotalPrice      string         `json:"totalPrice"`
	DiscountPercent string         `json:"discountPercent"`
	Extras          []string       `json:"extras"`
	Service         *ServiceInfo   `json:"service,omitempty"`
	Resources       []ResourceInfo `json:"resources"`
	User            *UserInfo      `json:"user,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// OrderListResponse список заказов
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
}

// StatusChangeResponse результат смены статуса
type StatusChangeResponse struct {
	OrderID        int64  `json:"orderId"`
	PreviousStatus string `json:"previousStatus"`
	Status         string `json:"status"`
	Changed        bool   `json:"changed"`
}

// ServiceRevenueResponse выручка по услуге
type ServiceRevenueResponse struct {
	ServiceID   int64  `json:"serviceId"`
	ServiceName string `json:"serviceName"`
	Orders      int    `json:"orders"`
	Revenue     string `json:"revenue"`
}

// DayRevenueResponse выручка за день площадки
type DayRevenueResponse struct {
	Date    string `json:"date"`
	Orders  int    `json:"orders"`
	Revenue string `json:"revenue"`
}

// StatisticsResponse агрегированная статистика за период
type StatisticsResponse struct {
	From              time.Time                `json:"from"`
	To                time.Time                `json:"to"`
	TotalOrders       int                      `json:"totalOrders"`
	CancelledOrders   int                      `json:"cancelledOrders"`
	CompletedOrders   int                      `json:"completedOrders"`
	OrdersByStatus    map[string]int           `json:"ordersByStatus"`
	TotalRevenue      string                   `json:"totalRevenue"`
	AverageOrderValue string                   `json:"averageOrderValue"`
	RevenueByService  []ServiceRevenueResponse `json:"revenueByService"`
	RevenueByDay      []DayRevenueResponse     `json:"revenueByDay"`
}

// Конвертеры

// FromDomainOrder конвертирует domain.Order в OrderResponse
func FromDomainOrder(order *domain.Order, loc *time.Location) *OrderResponse {
	if loc == nil {
		loc = time.UTC
	}
	start := order.OrderDate.In(loc)

	extras := order.Extras
	if extras == nil {
		extras = []string{}
	}

	resp := &OrderResponse{
		ID:              order.ID,
		UserID:          order.UserID,
		ServiceID:       order.ServiceID,
		OrderDate:       start,
		EndsAt:          order.EndsAt().In(loc),
		Date:            start.Format(domain.DateFormat),
		StartTime:       start.Format(domain.TimeFormat),
		PeopleCount:     order.PeopleCount,
		Status:          order.Status.String(),
		TotalPrice:      order.TotalPrice.StringFixed(2),
		DiscountPercent: order.DiscountPercent.StringFixed(2),
		Extras:          extras,
		Resources:       make([]ResourceInfo, 0, len(order.Resources)),
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}

	if order.Service != nil {
		resp.Service = &ServiceInfo{
			ID:              order.Service.ID,
			Name:            order.Service.Name,
			DurationMinutes: order.Service.DurationMinutes,
		}
	}

	for _, r := range order.Resources {
		resp.Resources = append(resp.Resources, ResourceInfo{ID: r.ID, Name: r.Name, Capacity: r.Capacity})
	}

	if order.User != nil {
		resp.User = &UserInfo{
			ID:              order.User.ID,
			Name:            order.User.Name,
			Email:           order.User.Email,
			CitizenCategory: order.User.CitizenCategory,
		}
	}

	return resp
}

// FromDomainOrderList конвертирует список заказов
func FromDomainOrderList(orders []*domain.Order, loc *time.Location) *OrderListResponse {
	resp := &OrderListResponse{
		Orders: make([]OrderResponse, 0, len(orders)),
		Total:  len(orders),
	}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, *FromDomainOrder(o, loc))
	}
	return resp
}

// FromDomainStatistics конвертирует статистику, суммы округляются до копеек
func FromDomainStatistics(stats *domain.Statistics) *StatisticsResponse {
	resp := &StatisticsResponse{
		From:              stats.From,
		To:                stats.To,
		TotalOrders:       stats.TotalOrders,
		CancelledOrders:   stats.CancelledOrders,
		CompletedOrders:   stats.CompletedOrders,
		OrdersByStatus:    make(map[string]int, len(domain.AllStatuses)),
		TotalRevenue:      stats.TotalRevenue.StringFixed(2),
		AverageOrderValue: stats.AverageOrderValue.StringFixed(2),
		RevenueByService:  make([]ServiceRevenueResponse, 0, len(stats.RevenueByService)),
		RevenueByDay:      make([]DayRevenueResponse, 0, len(stats.RevenueByDay)),
	}

	for _, status := range domain.AllStatuses {
		resp.OrdersByStatus[status.String()] = stats.OrdersByStatus[status]
	}

	for _, sr := range stats.RevenueByService {
		resp.RevenueByService = append(resp.RevenueByService, ServiceRevenueResponse{
			ServiceID:   sr.ServiceID,
			ServiceName: sr.ServiceName,
			Orders:      sr.Orders,
			Revenue:     sr.Revenue.StringFixed(2),
		})
	}
	sort.Slice(resp.RevenueByService, func(i, j int) bool {
		return resp.RevenueByService[i].ServiceID < resp.RevenueByService[j].ServiceID
	})

	for _, dr := range stats.RevenueByDay {
		resp.RevenueByDay = append(resp.RevenueByDay, DayRevenueResponse{
			Date:    dr.Date,
			Orders:  dr.Orders,
			Revenue: dr.Revenue.StringFixed(2),
		})
	}

	return resp
}
