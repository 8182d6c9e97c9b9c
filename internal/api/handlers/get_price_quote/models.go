package get_price_quote

import (
	"strings"
	"time"

	getPriceQuote "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_price_quote"
)

// QuoteResponse HTTP response model, суммы округлены до копеек
type QuoteResponse struct {
	ServiceID       int64     `json:"serviceId"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	Weekend         bool      `json:"weekend"`
	HourlyRate      string    `json:"hourlyRate"`
	DurationMinutes int       `json:"durationMinutes"`
	Base            string    `json:"base"`
	Extras          []string  `json:"extras"`
	ExtrasTotal     string    `json:"extrasTotal"`
	Subtotal        string    `json:"subtotal"`
	DiscountPercent string    `json:"discountPercent"`
	Discount        string    `json:"discount"`
	Total           string    `json:"total"`
}

// ParseExtras разбирает список опций через запятую
func ParseExtras(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getPriceQuote.Response, loc *time.Location) *QuoteResponse {
	q := resp.Quote
	extras := q.ExtraCodes
	if extras == nil {
		extras = []string{}
	}
	return &QuoteResponse{
		ServiceID:       resp.Service.ID,
		Start:           resp.Start.In(loc),
		End:             resp.End.In(loc),
		Weekend:         q.Weekend,
		HourlyRate:      q.HourlyRate.StringFixed(2),
		DurationMinutes: q.DurationMinutes,
		Base:            q.Base.StringFixed(2),
		Extras:          extras,
		ExtrasTotal:     q.Extras.StringFixed(2),
		Subtotal:        q.Subtotal.StringFixed(2),
		DiscountPercent: q.DiscountPercent.String(),
		Discount:        q.Discount.StringFixed(2),
		Total:           q.Total.StringFixed(2),
	}
}
