package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg, "venue-booking")

	m.ObserveHTTP("POST", "/api/v1/orders", 201, 15*time.Millisecond)
	m.IncBookingCreated(7)
	m.IncBookingCreated(7)
	m.IncBookingConflict("create_booking")
	m.AddOrdersCompleted(3)
	m.AddOrdersCompleted(0)
	m.ObserveQuery("query", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/orders", "201")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingsCreated.WithLabelValues("7")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingConflicts.WithLabelValues("create_booking")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.OrdersCompleted.WithLabelValues()))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("query")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTP("GET", "/", 200, time.Second)
		m.IncBookingCreated(1)
		m.IncEventFailed("order.created")
		m.IncTxRetry("serializable")
	})
}
