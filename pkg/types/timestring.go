package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	timeLayout    = "15:04"
	minutesPerDay = 24 * 60
)

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow возвращается, когда результат выходит за пределы суток
	ErrTimeOverflow = errors.New("time string out of day range")
)

// TimeString время суток в формате "HH:MM" без даты и часового пояса.
// В БД хранится в колонке типа TIME.
type TimeString string

// NewTimeString создаёт TimeString из времени суток t (в его собственной локации)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку "HH:MM" или "HH:MM:SS"
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(normalize(s))
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// MustTimeString как NewTimeStringFromString, но паникует при ошибке. Только для констант и тестов.
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// Validate проверяет формат "HH:MM"
func (t TimeString) Validate() error {
	_, err := t.Minutes()
	return err
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// Minutes возвращает количество минут от начала суток
func (t TimeString) Minutes() (int, error) {
	parts := strings.Split(string(t), ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	return hours*60 + minutes, nil
}

// AddMinutes прибавляет минуты. Результат должен остаться в пределах тех же суток.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := t.Minutes()
	if err != nil {
		return "", err
	}

	total := current + minutes
	if total < 0 || total >= minutesPerDay {
		return "", fmt.Errorf("%w: %s + %d min", ErrTimeOverflow, t, minutes)
	}

	return fromMinutes(total), nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	return errA == nil && errB == nil && a < b
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	return errA == nil && errB == nil && a > b
}

// OnDate возвращает момент времени t в указанную дату в локации loc
func (t TimeString) OnDate(date time.Time, loc *time.Location) (time.Time, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return time.Time{}, err
	}

	local := date.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), minutes/60, minutes%60, 0, 0, loc), nil
}

// Scan реализует sql.Scanner для колонок TIME ("10:00:00")
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

func (t *TimeString) scanString(s string) error {
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func normalize(s string) string {
	s = strings.TrimSpace(s)
	// "10:00:00" -> "10:00"
	if len(s) == 8 && s[2] == ':' && s[5] == ':' {
		return s[:5]
	}
	// "9:30" -> "09:30"
	if len(s) == 4 && s[1] == ':' {
		return "0" + s
	}
	return s
}

func fromMinutes(total int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60))
}
