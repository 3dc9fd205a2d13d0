package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every prometheus collector the service exposes.
// All Record* methods are safe to call on a nil *Metrics (metrics disabled).
type Metrics struct {
	// HTTP
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Database
	DBQueryDuration     *prometheus.HistogramVec
	DBQueriesTotal      *prometheus.CounterVec
	DBErrorsTotal       *prometheus.CounterVec
	DBOpenConnections   *prometheus.GaugeVec
	DBInUseConnections  *prometheus.GaugeVec
	DBIdleConnections   *prometheus.GaugeVec
	DBWaitCount         *prometheus.GaugeVec
	DBWaitDurationTotal *prometheus.GaugeVec

	// Booking engine
	ReservationsTotal       *prometheus.CounterVec
	SlotConflictsTotal      *prometheus.CounterVec
	PaymentTransitionsTotal *prometheus.CounterVec
	CacheRequestsTotal      *prometheus.CounterVec
	PaymentEventsTotal      *prometheus.CounterVec
}

// New registers the collectors in the default registry
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the collectors in reg (tests use a fresh registry)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		HTTPRequestsInFlight: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "http_requests_in_flight",
			Help:        "Number of HTTP requests being served",
			ConstLabels: constLabels,
		}, []string{"method", "route"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation"}),
		DBQueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open connections in the pool",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBInUseConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBIdleConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle connections in the pool",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBWaitDurationTotal: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_duration_seconds_total",
			Help:        "Total time blocked waiting for a new connection",
			ConstLabels: constLabels,
		}, []string{"db"}),

		ReservationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "turf_reservations_total",
			Help:        "Reservation attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		SlotConflictsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "turf_slot_conflicts_total",
			Help:        "Slots rejected because they were already booked",
			ConstLabels: constLabels,
		}, []string{"turf_id"}),
		PaymentTransitionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "turf_payment_transitions_total",
			Help:        "Applied payment status transitions",
			ConstLabels: constLabels,
		}, []string{"from", "to"}),
		CacheRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "turf_catalog_cache_requests_total",
			Help:        "Catalog cache lookups by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		PaymentEventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "turf_payment_events_total",
			Help:        "Payment events consumed from the broker by routing key and result",
			ConstLabels: constLabels,
		}, []string{"routing_key", "result"}),
	}
}

// RecordHTTPRequest observes a finished HTTP request
func (m *Metrics) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// RecordDBQuery observes a finished database query
func (m *Metrics) RecordDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.DBQueriesTotal.WithLabelValues(operation).Inc()
	m.DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.DBErrorsTotal.WithLabelValues(operation).Inc()
	}
}

// RecordReservation counts a reservation attempt outcome
func (m *Metrics) RecordReservation(outcome string) {
	if m == nil {
		return
	}
	m.ReservationsTotal.WithLabelValues(outcome).Inc()
}

// RecordSlotConflicts counts slots lost to a concurrent booking
func (m *Metrics) RecordSlotConflicts(turfID string, slots int) {
	if m == nil {
		return
	}
	m.SlotConflictsTotal.WithLabelValues(turfID).Add(float64(slots))
}

// RecordPaymentTransition counts an applied payment status change
func (m *Metrics) RecordPaymentTransition(from, to string) {
	if m == nil {
		return
	}
	m.PaymentTransitionsTotal.WithLabelValues(from, to).Inc()
}

// RecordCacheResult counts a catalog cache lookup (hit, miss, error)
func (m *Metrics) RecordCacheResult(result string) {
	if m == nil {
		return
	}
	m.CacheRequestsTotal.WithLabelValues(result).Inc()
}

// RecordPaymentEvent counts a consumed broker message
func (m *Metrics) RecordPaymentEvent(routingKey, result string) {
	if m == nil {
		return
	}
	m.PaymentEventsTotal.WithLabelValues(routingKey, result).Inc()
}
