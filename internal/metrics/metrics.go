package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns its registry so several instances can coexist in one process.
type Collector struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlightGauge   prometheus.Gauge

	AppointmentsCreated *prometheus.CounterVec
	BookingRejected     *prometheus.CounterVec
	StatusChanges       *prometheus.CounterVec
	SlotsComputed       prometheus.Histogram

	AvailabilityCache *prometheus.CounterVec

	ReminderTicks      prometheus.Counter
	ReminderTickErrors prometheus.Counter
	RemindersPromoted  prometheus.Counter
	RemindersActive    prometheus.Gauge

	AuditEntriesTotal  *prometheus.CounterVec
	AuditBufferDropped prometheus.Counter
}

func NewCollector(serviceName string) *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Collector{
		registry: reg,

		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code.",
		}, []string{"method", "path", "status"}),

		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "path", "status"}),

		InFlightGauge: f.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),

		AppointmentsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "booking",
			Name:      "appointments_created_total",
			Help:      "Appointments created by initial status.",
		}, []string{"status"}),

		BookingRejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "booking",
			Name:      "rejected_total",
			Help:      "Booking attempts rejected by reason code.",
		}, []string{"reason"}),

		StatusChanges: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "booking",
			Name:      "status_changes_total",
			Help:      "Status changes by target status and origin (staff or client).",
		}, []string{"status", "origin"}),

		SlotsComputed: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "availability",
			Name:      "slots_per_query",
			Help:      "Number of free start times returned per availability query.",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 48},
		}),

		AvailabilityCache: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "availability",
			Name:      "cache_lookups_total",
			Help:      "Availability cache lookups by result (hit, miss, error).",
		}, []string{"result"}),

		ReminderTicks: f.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "reminder",
			Name:      "ticks_total",
			Help:      "Reminder scanner ticks executed.",
		}),

		ReminderTickErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "reminder",
			Name:      "tick_errors_total",
			Help:      "Reminder scanner ticks that failed. Alert if growing.",
		}),

		RemindersPromoted: f.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "reminder",
			Name:      "promoted_total",
			Help:      "Appointments promoted into the active reminder set.",
		}),

		RemindersActive: f.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Subsystem: "reminder",
			Name:      "active",
			Help:      "Current size of the active reminder set.",
		}),

		AuditEntriesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "audit",
			Name:      "entries_total",
			Help:      "Audit entries delivered by sink.",
		}, []string{"sink"}),

		AuditBufferDropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "audit",
			Name:      "buffer_dropped_total",
			Help:      "Audit entries dropped due to full buffer. Alert if non-zero.",
		}),
	}
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
