package userservice

import "github.com/shopspring/decimal"

// User модель пользователя из UserService
type User struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	CitizenCategory string          `json:"citizen_category"`
	DiscountPercent decimal.Decimal `json:"discount_percent"` // льгота категории, 0..100
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
