package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.DocumentWritten("invoice", OperationCreate)
	m.DocumentWritten("invoice", OperationCreate)
	m.DocumentConflict("receipt")
	m.SeedRun(SeedResultSuccess)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.documentsWritten.WithLabelValues("invoice", OperationCreate)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.conflicts.WithLabelValues("receipt")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.seedRuns.WithLabelValues(SeedResultSuccess)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.DocumentWritten("invoice", OperationDelete)
		m.DocumentConflict("invoice")
		m.DocumentExported("invoice", "pdf")
		m.SeedRun(SeedResultFailure)
		m.HTTPRequest("/health", "GET", "2xx")
	})
}

func TestHandlerServesRegistry(t *testing.T) {
	m := New()
	m.DocumentExported("receipt", "xlsx")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `invoicely_document_exports_total{format="xlsx",kind="receipt"} 1`)
}
