package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// ParseInstant разбирает RFC3339 или локальное время площадки "2006-01-02T15:04"
func ParseInstant(raw string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02T15:04", raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q", raw)
	}
	return t, nil
}

// ParseDate разбирает дату "YYYY-MM-DD" в часовом поясе площадки
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(domain.DateFormat, raw, loc)
}

// QueryInt читает необязательный целый параметр, пустой даёт def
func QueryInt(q url.Values, name string, def int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

// QueryInstant читает необязательный параметр времени, пустой даёт nil
func QueryInstant(q url.Values, name string, loc *time.Location) (*time.Time, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := ParseDate(raw, loc); err == nil {
		return &t, nil
	}
	t, err := ParseInstant(raw, loc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &t, nil
}

// QueryPeriod читает from/to. Дата без времени в to включает весь день.
func QueryPeriod(q url.Values, loc *time.Location) (from, to *time.Time, err error) {
	if from, err = QueryInstant(q, "from", loc); err != nil {
		return nil, nil, err
	}
	if to, err = QueryInstant(q, "to", loc); err != nil {
		return nil, nil, err
	}
	if to != nil {
		if _, dateErr := ParseDate(q.Get("to"), loc); dateErr == nil {
			end := to.AddDate(0, 0, 1).Add(-time.Nanosecond)
			to = &end
		}
	}
	return from, to, nil
}
