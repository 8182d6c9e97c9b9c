package reschedule_order

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.OrderID <= 0 {
		return fmt.Errorf("%w: orderID must be positive", ErrInvalidInput)
	}

	if !req.IsAdmin && req.RequesterID <= 0 {
		return fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}

	if req.NewStart.IsZero() {
		return fmt.Errorf("%w: newStart is required", ErrInvalidInput)
	}

	if req.NewStart.Before(now) {
		return ErrStartInPast
	}

	return nil
}
