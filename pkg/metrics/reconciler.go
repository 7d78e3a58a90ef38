package metrics

import "github.com/prometheus/client_golang/prometheus"

// ReconcilerMetrics tracks the attendance bulk reconciler.
type ReconcilerMetrics struct {
	rowsUpserted       prometheus.Counter
	leavePeriodsOpened prometheus.Counter
	batchFailures      prometheus.Counter
}

// NewReconcilerMetrics registers the reconciler metrics on the provided registerer.
func NewReconcilerMetrics(reg prometheus.Registerer) *ReconcilerMetrics {
	if reg == nil {
		return &ReconcilerMetrics{}
	}
	rows := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "attendance_rows_upserted_total",
		Help: "Attendance rows written by the bulk reconciler.",
	})
	opened := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "attendance_leave_periods_opened_total",
		Help: "Leave periods auto-created from attendance entries.",
	})
	failures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "attendance_batch_failures_total",
		Help: "Attendance reconcile batches that rolled back.",
	})
	reg.MustRegister(rows, opened, failures)
	return &ReconcilerMetrics{
		rowsUpserted:       rows,
		leavePeriodsOpened: opened,
		batchFailures:      failures,
	}
}

// AddRowsUpserted records n reconciled rows.
func (m *ReconcilerMetrics) AddRowsUpserted(n int) {
	if m == nil || m.rowsUpserted == nil {
		return
	}
	m.rowsUpserted.Add(float64(n))
}

// IncLeavePeriodsOpened records one auto-created leave period.
func (m *ReconcilerMetrics) IncLeavePeriodsOpened() {
	if m == nil || m.leavePeriodsOpened == nil {
		return
	}
	m.leavePeriodsOpened.Inc()
}

// IncBatchFailures records one rolled-back reconcile batch.
func (m *ReconcilerMetrics) IncBatchFailures() {
	if m == nil || m.batchFailures == nil {
		return
	}
	m.batchFailures.Inc()
}
