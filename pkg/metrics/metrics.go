package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса бронирования
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration   *prometheus.HistogramVec
	DBQueryErrors     *prometheus.CounterVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec
	DBTxRetries       *prometheus.CounterVec

	// Бизнес-метрики
	BookingsCreated  *prometheus.CounterVec
	BookingConflicts *prometheus.CounterVec
	OrdersCompleted  *prometheus.CounterVec
	StatusChanges    *prometheus.CounterVec
	EventsFailed     *prometheus.CounterVec
}

// New создаёт и регистрирует метрики в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry создаёт метрики и регистрирует их в указанном реестре (для тестов)
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBTxRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_tx_retries_total",
			Help:        "Serializable transaction retries after serialization failure",
			ConstLabels: constLabels,
		}, []string{"isolation"}),

		BookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of created bookings",
			ConstLabels: constLabels,
		}, []string{"service_id"}),

		BookingConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_conflicts_total",
			Help:        "Booking attempts rejected because a resource was busy",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		OrdersCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "orders_autocompleted_total",
			Help:        "Orders moved to completed by the sweeper",
			ConstLabels: constLabels,
		}, []string{}),

		StatusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "order_status_changes_total",
			Help:        "Order status transitions",
			ConstLabels: constLabels,
		}, []string{"to"}),

		EventsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "order_events_failed_total",
			Help:        "Order events that could not be published",
			ConstLabels: constLabels,
		}, []string{"type"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.DBTxRetries,
		m.BookingsCreated,
		m.BookingConflicts,
		m.OrdersCompleted,
		m.StatusChanges,
		m.EventsFailed,
	)

	return m
}

// ObserveHTTP записывает метрики одного HTTP запроса
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveQuery записывает длительность запроса к БД
func (m *Metrics) ObserveQuery(operation string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// IncTxRetry увеличивает счётчик повторов транзакции
func (m *Metrics) IncTxRetry(isolation string) {
	if m == nil {
		return
	}
	m.DBTxRetries.WithLabelValues(isolation).Inc()
}

// IncBookingCreated увеличивает счётчик созданных бронирований
func (m *Metrics) IncBookingCreated(serviceID int64) {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues(strconv.FormatInt(serviceID, 10)).Inc()
}

// IncBookingConflict увеличивает счётчик конфликтов занятости
func (m *Metrics) IncBookingConflict(operation string) {
	if m == nil {
		return
	}
	m.BookingConflicts.WithLabelValues(operation).Inc()
}

// AddOrdersCompleted учитывает заказы, завершённые автоматически
func (m *Metrics) AddOrdersCompleted(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.OrdersCompleted.WithLabelValues().Add(float64(n))
}

// IncStatusChange учитывает смену статуса заказа
func (m *Metrics) IncStatusChange(to string) {
	if m == nil {
		return
	}
	m.StatusChanges.WithLabelValues(to).Inc()
}

// IncEventFailed учитывает неотправленное событие
func (m *Metrics) IncEventFailed(eventType string) {
	if m == nil {
		return
	}
	m.EventsFailed.WithLabelValues(eventType).Inc()
}
