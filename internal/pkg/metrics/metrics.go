package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "catalog"

// Outcome label values shared by the stock counters.
const (
	OutcomeApplied  = "applied"
	OutcomeConflict = "version_conflict"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
	OutcomeSkipped  = "duplicate"
)

type Metrics struct {
	Registry *prometheus.Registry

	StockMutations         *prometheus.CounterVec
	ReservationTransitions *prometheus.CounterVec
	SweepRuns              *prometheus.CounterVec
	SweepExpired           prometheus.Counter
	SweepDuration          prometheus.Histogram
	OrderEvents            *prometheus.CounterVec
	TxRetries              *prometheus.CounterVec
}

func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		Registry: reg,
		StockMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_mutations_total",
			Help:      "Variant quantity mutations by reason and outcome.",
		}, []string{"reason", "outcome"}),
		ReservationTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_transitions_total",
			Help:      "Stock reservation state transitions by target status.",
		}, []string{"status"}),
		SweepRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_sweeps_total",
			Help:      "Expiration sweeper runs by result.",
		}, []string{"result"}),
		SweepExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_sweep_expired_total",
			Help:      "Reservations moved to EXPIRED by the sweeper.",
		}),
		SweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reservation_sweep_duration_seconds",
			Help:      "Wall time of one expiration sweep.",
			Buckets:   prometheus.DefBuckets,
		}),
		OrderEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_events_total",
			Help:      "Order lifecycle events handled by type and outcome.",
		}, []string{"type", "outcome"}),
		TxRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tx_retries_total",
			Help:      "Transactions retried after a serialization failure or deadlock, by SQLSTATE.",
		}, []string{"sqlstate"}),
	}

	reg.MustRegister(
		m.StockMutations,
		m.ReservationTransitions,
		m.SweepRuns,
		m.SweepExpired,
		m.SweepDuration,
		m.OrderEvents,
		m.TxRetries,
	)
	return m
}

// NewDefault registers the process and go collectors as well; used by the server binary.
func NewDefault() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return New(reg)
}

// NewNop returns metrics bound to a private registry, for tests and tools.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
