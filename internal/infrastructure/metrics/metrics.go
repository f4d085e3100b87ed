package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Statement metrics
	StatementsGenerated prometheus.Counter
	StatementsPaid      prometheus.Counter
	StatementsReopened  prometheus.Counter
	StatementAmount     prometheus.Histogram

	// Bill metrics
	BillPaymentsGenerated prometheus.Counter
	BillPaymentsPaid      prometheus.Counter
	BillPaymentsReverted  *prometheus.CounterVec

	// Reconciliation metrics
	ReconcileRuns      *prometheus.CounterVec
	ReconcileDrifted   prometheus.Counter
	ReconcileBackfills prometheus.Counter
	ReconcileDuration  prometheus.Histogram

	// Summary metrics
	SummaryCacheHits   prometheus.Counter
	SummaryCacheMisses prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries  *prometheus.CounterVec
	DBDuration *prometheus.HistogramVec
	DBErrors   *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Audit metrics
	AuditEventsRecorded *prometheus.CounterVec
	AuditEventsDropped  prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		StatementsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contas_statements_generated_total",
			Help: "Total number of card statements generated",
		}),
		StatementsPaid: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contas_statements_paid_total",
			Help: "Total number of card statements paid",
		}),
		StatementsReopened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contas_statements_reopened_total",
			Help: "Total number of card statements reopened",
		}),
		StatementAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "contas_statement_amount",
			Help:    "Paid statement totals",
			Buckets: []float64{10, 100, 500, 1000, 5000, 10000, 50000},
		}),

		BillPaymentsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contas_bill_payments_generated_total",
			Help: "Total number of bill payments generated",
		}),
		BillPaymentsPaid: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contas_bill_payments_paid_total",
			Help: "Total number of bill payments marked paid",
		}),
		BillPaymentsReverted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contas_bill_payments_reverted_total",
				Help: "Total number of bill payments reverted by target status",
			},
			[]string{"status"},
		),

		ReconcileRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contas_reconcile_runs_total",
				Help: "Total reconciliation runs by mode",
			},
			[]string{"mode"},
		),
		ReconcileDrifted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contas_reconcile_drifted_accounts_total",
			Help: "Total accounts found with balance drift",
		}),
		ReconcileBackfills: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contas_reconcile_backfills_total",
			Help: "Total starting balances backfilled",
		}),
		ReconcileDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "contas_reconcile_duration_seconds",
			Help:    "Duration of reconciliation runs",
			Buckets: prometheus.DefBuckets,
		}),

		SummaryCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contas_summary_cache_hits_total",
			Help: "Total card summary cache hits",
		}),
		SummaryCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contas_summary_cache_misses_total",
			Help: "Total card summary cache misses",
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contas_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "contas_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contas_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "collection"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "contas_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "collection"},
		),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contas_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contas_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contas_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		AuditEventsRecorded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contas_audit_events_total",
				Help: "Total audit events recorded by action",
			},
			[]string{"action"},
		),
		AuditEventsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contas_audit_events_dropped_total",
			Help: "Total audit events dropped due to a full buffer",
		}),
	}
}
