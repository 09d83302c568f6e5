package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Registry metrics
	AccountsCreated prometheus.Counter
	AccountsDeleted prometheus.Counter
	AccountErrors   *prometheus.CounterVec

	// Journal metrics
	EntriesCreated prometheus.Counter
	EntriesUpdated prometheus.Counter
	EntriesDeleted prometheus.Counter
	EntryAmount    prometheus.Histogram
	EntryErrors    *prometheus.CounterVec

	// Balance metrics
	BalanceComputations prometheus.Counter
	BalanceDuration     prometheus.Histogram

	// Sweep metrics
	SweepRuns             prometheus.Counter
	SweepEntriesProcessed prometheus.Gauge
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeper_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeper_accounts_deleted_total",
			Help: "Total number of accounts deleted",
		}),
		AccountErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookkeeper_account_errors_total",
				Help: "Total number of account operation errors by type",
			},
			[]string{"error_type"},
		),

		EntriesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeper_entries_created_total",
			Help: "Total number of journal entries created",
		}),
		EntriesUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeper_entries_updated_total",
			Help: "Total number of journal entries updated",
		}),
		EntriesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeper_entries_deleted_total",
			Help: "Total number of journal entries deleted",
		}),
		EntryAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bookkeeper_entry_amount",
			Help:    "Journal entry amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		EntryErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookkeeper_entry_errors_total",
				Help: "Total number of entry operation errors by type",
			},
			[]string{"error_type"},
		),

		BalanceComputations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeper_balance_computations_total",
			Help: "Total number of balance report computations",
		}),
		BalanceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bookkeeper_balance_duration_seconds",
			Help:    "Duration of balance report computations",
			Buckets: prometheus.DefBuckets,
		}),

		SweepRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeper_sweep_runs_total",
			Help: "Total number of journal sweeps",
		}),
		SweepEntriesProcessed: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "bookkeeper_sweep_entries_processed",
			Help: "Entries that passed validation in the last sweep",
		}),
	}
}
