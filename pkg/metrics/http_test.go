package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.IncInFlight()
	m.ObserveRequest("/api/v1/attendance", "POST", 200, 25*time.Millisecond)
	m.DecInFlight()

	families, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	require.True(t, names["http_requests_total"])
	require.True(t, names["http_request_duration_seconds"])
}

func TestHTTPMetricsNilSafe(t *testing.T) {
	var m *HTTPMetrics
	m.ObserveRequest("/x", "GET", 500, time.Second)
	m.IncInFlight()
	m.DecInFlight()

	empty := NewHTTPMetrics(nil)
	empty.ObserveRequest("", "GET", 404, 0)
}

func TestReconcilerMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewReconcilerMetrics(reg)

	m.AddRowsUpserted(3)
	m.IncLeavePeriodsOpened()
	m.IncBatchFailures()

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 3)

	var nilMetrics *ReconcilerMetrics
	nilMetrics.AddRowsUpserted(1)
	nilMetrics.IncLeavePeriodsOpened()
	nilMetrics.IncBatchFailures()
}
