package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveAtleta(t *testing.T) {
	m := New()

	m.ObserveAtleta("create", OutcomeSuccess, 10*time.Millisecond)
	m.ObserveAtleta("create", OutcomeConflict, 5*time.Millisecond)
	m.ObserveAtleta("create", OutcomeConflict, 5*time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, `workout_atleta_operations_total{operation="create",outcome="success"} 1`)
	assert.Contains(t, body, `workout_atleta_operations_total{operation="create",outcome="conflict"} 2`)
	assert.Contains(t, body, `workout_atleta_operation_duration_seconds_count{operation="create"} 3`)
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAtleta("get", OutcomeSuccess, time.Millisecond)
		m.ObserveReference("categoria", "cache")
	})
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.ObserveReference("categoria", "database")

	assert.Contains(t, scrape(t, m), `workout_reference_lookups_total{kind="categoria",source="database"} 1`)
}
