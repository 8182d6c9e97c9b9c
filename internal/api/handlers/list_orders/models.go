package list_orders

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/orders/models"
	"github.com/m04kA/SMC-VenueBookingService/pkg/ptr"
)

// ParseQuery собирает фильтр из query параметров
// from, to, status, userId, serviceId, limit, offset
func ParseQuery(q url.Values, loc *time.Location) (*models.ListOrdersRequest, error) {
	from, to, err := handlers.QueryPeriod(q, loc)
	if err != nil {
		return nil, err
	}

	req := &models.ListOrdersRequest{From: from, To: to}

	if status := q.Get("status"); status != "" {
		req.Status = ptr.Ptr(status)
	}
	if raw := q.Get("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.UserID = ptr.Ptr(id)
	}
	if raw := q.Get("serviceId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ServiceID = ptr.Ptr(id)
	}
	if raw := q.Get("limit"); raw != "" {
		if req.Limit, err = strconv.ParseUint(raw, 10, 64); err != nil {
			return nil, err
		}
	}
	if raw := q.Get("offset"); raw != "" {
		if req.Offset, err = strconv.ParseUint(raw, 10, 64); err != nil {
			return nil, err
		}
	}

	return req, nil
}
