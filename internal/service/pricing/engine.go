package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

var (
	minutesPerHour = decimal.NewFromInt(60)
	hundred        = decimal.NewFromInt(100)
)

// Quote разбивка стоимости заказа. Значения не округляются.
type Quote struct {
	Weekend         bool
	HourlyRate      decimal.Decimal
	DurationMinutes int
	Base            decimal.Decimal
	Extras          decimal.Decimal
	ExtraCodes      []string
	Subtotal        decimal.Decimal
	DiscountPercent decimal.Decimal // после ограничения в [0, 100]
	Discount        decimal.Decimal
	Total           decimal.Decimal
}

// Engine рассчитывает стоимость заказа.
// Выходной день определяется в часовом поясе площадки.
type Engine struct {
	extras domain.ExtrasCatalog
	loc    *time.Location
}

// NewEngine создает калькулятор стоимости
func NewEngine(extras domain.ExtrasCatalog, loc *time.Location) *Engine {
	if extras == nil {
		extras = domain.DefaultExtrasCatalog()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{extras: extras, loc: loc}
}

// Catalog возвращает каталог дополнительных опций
func (e *Engine) Catalog() domain.ExtrasCatalog {
	return e.extras
}

// Location возвращает часовой пояс площадки
func (e *Engine) Location() *time.Location {
	return e.loc
}

// Quote рассчитывает стоимость:
// base = rate * minutes / 60, total = (base + extras) * (1 - clamp(percent/100, 0, 1))
func (e *Engine) Quote(
	service *domain.Service,
	start time.Time,
	durationMinutes int,
	extras []string,
	discountPercent decimal.Decimal,
) (Quote, error) {
	if service == nil {
		return Quote{}, ErrNilService
	}
	if durationMinutes <= 0 {
		return Quote{}, ErrInvalidDuration
	}

	weekend := domain.IsWeekend(start, e.loc)
	rate := service.WeekdayPrice
	if weekend {
		rate = service.WeekendPrice
	}

	base := rate.Mul(decimal.NewFromInt(int64(durationMinutes))).Div(minutesPerHour)

	extrasTotal := decimal.Zero
	codes := make([]string, 0, len(extras))
	for _, code := range extras {
		fee, ok := e.extras.Fee(code)
		if !ok {
			return Quote{}, fmt.Errorf("%w: %q", ErrUnknownExtra, code)
		}
		extrasTotal = extrasTotal.Add(fee)
		codes = append(codes, code)
	}

	subtotal := base.Add(extrasTotal)
	percent := ClampPercent(discountPercent)
	discount := subtotal.Mul(percent).Div(hundred)

	return Quote{
		Weekend:         weekend,
		HourlyRate:      rate,
		DurationMinutes: durationMinutes,
		Base:            base,
		Extras:          extrasTotal,
		ExtraCodes:      codes,
		Subtotal:        subtotal,
		DiscountPercent: percent,
		Discount:        discount,
		Total:           subtotal.Sub(discount),
	}, nil
}

// ComputeTotal возвращает итоговую стоимость заказа
func (e *Engine) ComputeTotal(
	service *domain.Service,
	start time.Time,
	durationMinutes int,
	extras []string,
	discountPercent decimal.Decimal,
) (decimal.Decimal, error) {
	q, err := e.Quote(service, start, durationMinutes, extras, discountPercent)
	if err != nil {
		return decimal.Zero, err
	}
	return q.Total, nil
}

// ClampPercent ограничивает процент скидки диапазоном [0, 100]
func ClampPercent(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}
