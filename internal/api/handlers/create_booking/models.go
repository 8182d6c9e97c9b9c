package create_booking

import (
	"time"

	ordersModels "github.com/m04kA/SMC-VenueBookingService/internal/service/orders/models"
	createBooking "github.com/m04kA/SMC-VenueBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model. Владелец заказа берётся из X-User-ID.
type CreateBookingRequest struct {
	ServiceID       int64    `json:"serviceId" validate:"required,gt=0"`
	Start           string   `json:"start" validate:"required"` // RFC3339 или "2025-10-15T14:00"
	DurationMinutes int      `json:"durationMinutes,omitempty" validate:"gte=0"`
	PeopleCount     int      `json:"peopleCount" validate:"required,gt=0"`
	ResourceIDs     []int64  `json:"resourceIds" validate:"required,min=1,dive,gt=0"`
	Extras          []string `json:"extras,omitempty" validate:"dive,required"`
}

// PriceBreakdown разбивка стоимости созданного заказа
type PriceBreakdown struct {
	Weekend         bool   `json:"weekend"`
	HourlyRate      string `json:"hourlyRate"`
	Base            string `json:"base"`
	ExtrasTotal     string `json:"extrasTotal"`
	Subtotal        string `json:"subtotal"`
	DiscountPercent string `json:"discountPercent"`
	Discount        string `json:"discount"`
	Total           string `json:"total"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	*ordersModels.OrderResponse
	Price PriceBreakdown `json:"price"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64, start time.Time) *createBooking.Request {
	return &createBooking.Request{
		UserID:          userID,
		ServiceID:       r.ServiceID,
		Start:           start,
		DurationMinutes: r.DurationMinutes,
		PeopleCount:     r.PeopleCount,
		ResourceIDs:     r.ResourceIDs,
		Extras:          r.Extras,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response, loc *time.Location) *BookingResponse {
	q := resp.Quote
	return &BookingResponse{
		OrderResponse: ordersModels.FromDomainOrder(resp.Order, loc),
		Price: PriceBreakdown{
			Weekend:         q.Weekend,
			HourlyRate:      q.HourlyRate.StringFixed(2),
			Base:            q.Base.StringFixed(2),
			ExtrasTotal:     q.Extras.StringFixed(2),
			Subtotal:        q.Subtotal.StringFixed(2),
			DiscountPercent: q.DiscountPercent.String(),
			Discount:        q.Discount.StringFixed(2),
			Total:           q.Total.StringFixed(2),
		},
	}
}
