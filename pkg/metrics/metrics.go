package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec

	// Scheduling metrics
	AvailabilityChanges    *prometheus.CounterVec
	AppointmentsCreated    prometheus.Counter
	AppointmentTransitions *prometheus.CounterVec

	// Encounter metrics
	EncountersRecorded *prometheus.CounterVec
	EncounterLatency   prometheus.Histogram

	// Cache metrics
	BadgeCacheLookups *prometheus.CounterVec
}

// NewMetrics creates all application metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"method", "route"}),

		AvailabilityChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduling",
			Name:      "availability_changes_total",
			Help:      "Total number of availability upserts and deletes",
		}, []string{"operation"}),
		AppointmentsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduling",
			Name:      "appointments_created_total",
			Help:      "Total number of appointment requests",
		}),
		AppointmentTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduling",
			Name:      "appointment_transitions_total",
			Help:      "Total number of appointment decisions by target state and outcome",
		}, []string{"status", "result"}),

		EncountersRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "encounter",
			Name:      "recorded_total",
			Help:      "Total number of encounter recording attempts by outcome",
		}, []string{"result"}),
		EncounterLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "encounter",
			Name:      "transaction_duration_seconds",
			Help:      "Duration of the encounter recording transaction",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1},
		}),

		BadgeCacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "badge_lookups_total",
			Help:      "Total number of badge cache lookups by result",
		}, []string{"result"}),
	}
}
