// Package metrics holds the Prometheus collectors exported on /metrics.
// Every recording method is safe on a nil *Metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "carsharing"

type Metrics struct {
	registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	rentalsBooked   prometheus.Counter
	rentalsReturned *prometheus.CounterVec
	bookingsFailed  *prometheus.CounterVec
	paymentSessions prometheus.Counter
	paymentStatus   *prometheus.CounterVec
	providerCalls   *prometheus.HistogramVec
	jobRuns         *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help: "HTTP request latency.", Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		rentalsBooked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "rentals_booked_total",
			Help: "Rentals booked.",
		}),
		rentalsReturned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "rentals_returned_total",
			Help: "Rentals returned, split by whether they were overdue.",
		}, []string{"overdue"}),
		bookingsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "bookings_rejected_total",
			Help: "Bookings rejected by reason.",
		}, []string{"reason"}),
		paymentSessions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "payment_sessions_created_total",
			Help: "Checkout sessions opened.",
		}),
		paymentStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "payment_status_transitions_total",
			Help: "Payment status transitions applied.",
		}, []string{"status"}),
		providerCalls: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "payment_provider_call_duration_seconds",
			Help: "Payment provider call latency.", Buckets: prometheus.DefBuckets,
		}, []string{"operation", "outcome"}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "job_runs_total",
			Help: "Scheduled job runs by outcome.",
		}, []string{"job", "outcome"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpDuration,
		m.rentalsBooked, m.rentalsReturned, m.bookingsFailed,
		m.paymentSessions, m.paymentStatus, m.providerCalls,
		m.jobRuns,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) RentalBooked() {
	if m == nil {
		return
	}
	m.rentalsBooked.Inc()
}

func (m *Metrics) BookingRejected(reason string) {
	if m == nil {
		return
	}
	m.bookingsFailed.WithLabelValues(reason).Inc()
}

func (m *Metrics) RentalReturned(overdue bool) {
	if m == nil {
		return
	}
	m.rentalsReturned.WithLabelValues(strconv.FormatBool(overdue)).Inc()
}

func (m *Metrics) PaymentSessionCreated() {
	if m == nil {
		return
	}
	m.paymentSessions.Inc()
}

func (m *Metrics) PaymentStatusApplied(status string) {
	if m == nil {
		return
	}
	m.paymentStatus.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveProvider(operation string, err error, d time.Duration) {
	if m == nil {
		return
	}
	m.providerCalls.WithLabelValues(operation, outcome(err)).Observe(d.Seconds())
}

func (m *Metrics) JobRun(job string, err error) {
	if m == nil {
		return
	}
	m.jobRuns.WithLabelValues(job, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
