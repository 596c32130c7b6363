package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tenebrio-farm/internal/application/ports"
	"github.com/jhoicas/tenebrio-farm/internal/infrastructure/metrics"
)

var _ ports.Metrics = (*metrics.Prometheus)(nil)

func TestPrometheus_Contadores(t *testing.T) {
	m := metrics.NewPrometheus()

	m.StockMoveRecorded("in")
	m.StockMoveRecorded("out")
	m.StockMoveRecorded("out")
	m.ProductionRecorded(ports.OutcomeCommitted)
	m.ProductionRecorded(ports.OutcomeRolledBack)
	m.StockOutRejected()

	n, err := testutil.GatherAndCount(m.Registry(), "tenebrio_stock_moves_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "una serie por tipo de movimiento")

	n, err = testutil.GatherAndCount(m.Registry(), "tenebrio_production_records_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = testutil.GatherAndCount(m.Registry(), "tenebrio_stock_out_rejected_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPrometheus_Handler(t *testing.T) {
	m := metrics.NewPrometheus()
	m.StockOutRejected()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), "tenebrio_stock_out_rejected_total 1")
}
