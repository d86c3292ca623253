package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all application metrics on a private registry
type Metrics struct {
	registry *prometheus.Registry

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Бизнес-метрики
	BookingsCreated     prometheus.Counter
	BookingsRescheduled prometheus.Counter
	BookingsRejected    *prometheus.CounterVec
	RemindersSent       prometheus.Counter
	NotificationsFailed *prometheus.CounterVec
}

// New creates and registers all metrics under the given namespace
func New(serviceName string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"method", "route"}),
		BookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "bookings_created_total",
			Help:      "Total number of created bookings",
		}),
		BookingsRescheduled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "bookings_rescheduled_total",
			Help:      "Total number of rescheduled bookings",
		}),
		BookingsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "bookings_rejected_total",
			Help:      "Total number of rejected booking attempts by reason",
		}, []string{"reason"}),
		RemindersSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "reminders_sent_total",
			Help:      "Total number of upcoming-appointment reminders sent",
		}),
		NotificationsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "notifications_failed_total",
			Help:      "Total number of failed notifications by kind",
		}, []string{"kind"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.BookingsCreated,
		m.BookingsRescheduled,
		m.BookingsRejected,
		m.RemindersSent,
		m.NotificationsFailed,
	)

	return m
}

// Handler exposes the registry in Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry. Used in tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// IncBookingCreated is nil-safe so that metrics stay optional
func (m *Metrics) IncBookingCreated() {
	if m == nil {
		return
	}
	m.BookingsCreated.Inc()
}

func (m *Metrics) IncBookingRescheduled() {
	if m == nil {
		return
	}
	m.BookingsRescheduled.Inc()
}

func (m *Metrics) IncBookingRejected(reason string) {
	if m == nil {
		return
	}
	m.BookingsRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncReminderSent() {
	if m == nil {
		return
	}
	m.RemindersSent.Inc()
}

func (m *Metrics) IncNotificationFailed(kind string) {
	if m == nil {
		return
	}
	m.NotificationsFailed.WithLabelValues(kind).Inc()
}
