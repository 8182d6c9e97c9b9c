package check_availability

import "time"

// Request модель запроса проверки часов работы услуги
type Request struct {
	ServiceID       int64
	Start           time.Time
	DurationMinutes int // 0 - длительность услуги
}

// Response результат проверки
type Response struct {
	ServiceID       int64
	Available       bool
	Start           time.Time
	End             time.Time
	DurationMinutes int
	OpensAt         time.Time // открытие в день начала по времени площадки
	ClosesAt        time.Time
}
