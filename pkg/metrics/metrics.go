package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all application metrics
type Metrics struct {
	// Census metrics
	CensusQueries   *prometheus.CounterVec
	CensusLatency   prometheus.Histogram
	ActivePatients  *prometheus.GaugeVec
	LongStayPatient *prometheus.GaugeVec

	// Admission and note metrics
	Admissions  *prometheus.CounterVec
	NoteAppends *prometheus.CounterVec

	// Outbox related metrics
	OutboxEventsProcessed   prometheus.Counter
	OutboxEventsFailed      prometheus.Counter
	OutboxProcessingLatency prometheus.Histogram

	// Database metrics
	DatabaseOperations *prometheus.CounterVec
	DatabaseLatency    *prometheus.HistogramVec
}

// NewMetrics creates all application metrics and registers them with reg. A nil
// registerer leaves them unregistered, which is what tests want.
func NewMetrics(namespace, subsystem string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CensusQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "census_queries_total",
			Help:      "Total number of census aggregations by kind",
		}, []string{"kind"}),
		CensusLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "census_aggregation_duration_seconds",
			Help:      "Time spent loading and aggregating a census snapshot",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		ActivePatients: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "active_patients",
			Help:      "Active admissions per department at the last sweep",
		}, []string{"department"}),
		LongStayPatient: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "long_stay_patients",
			Help:      "Long-stay admissions per department at the last sweep",
		}, []string{"department"}),
		Admissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "admissions_total",
			Help:      "Admission writes by outcome",
		}, []string{"action", "status"}),
		NoteAppends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "long_stay_note_appends_total",
			Help:      "Long-stay note appends by outcome",
		}, []string{"status"}),
		OutboxEventsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "outbox_events_processed_total",
			Help:      "Total number of successfully processed outbox events",
		}),
		OutboxEventsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "outbox_events_failed_total",
			Help:      "Total number of failed outbox events",
		}),
		OutboxProcessingLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "outbox_processing_duration_seconds",
			Help:      "Time spent processing outbox events",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		DatabaseOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "database_operations_total",
			Help:      "Total number of database operations",
		}, []string{"operation", "status"}),
		DatabaseLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "database_operation_duration_seconds",
			Help:      "Duration of database operations",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.CensusQueries,
			m.CensusLatency,
			m.ActivePatients,
			m.LongStayPatient,
			m.Admissions,
			m.NoteAppends,
			m.OutboxEventsProcessed,
			m.OutboxEventsFailed,
			m.OutboxProcessingLatency,
			m.DatabaseOperations,
			m.DatabaseLatency,
		)
	}
	return m
}

// New creates unregistered metrics under namespace.
func New(namespace string) *Metrics {
	return NewMetrics(namespace, "", nil)
}

// ObserveOutcome increments vec with "success" or "error" as the last label.
func ObserveOutcome(vec *prometheus.CounterVec, err error, labels ...string) {
	status := "success"
	if err != nil {
		status = "error"
	}
	vec.WithLabelValues(append(labels, status)...).Inc()
}
