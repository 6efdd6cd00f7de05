package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercial-api/internal/application/ports"
)

var _ ports.LedgerMetrics = (*LedgerMetrics)(nil)

func TestLedgerMetrics_Contadores(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, Config{ServiceName: "test", Environment: "ci"})

	m.PaymentConfirmed("Efectivo", decimal.NewFromInt(200))
	m.PaymentConfirmed("Efectivo", decimal.NewFromInt(300))
	m.PaymentConfirmed("", decimal.NewFromInt(1))
	m.PaymentRejected("invalid_state")
	m.PaymentFailed()
	m.QuotationConverted()
	m.MovementCanceled("SALE")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.paymentsConfirmed.WithLabelValues("Efectivo")))
	assert.Equal(t, 500.0, testutil.ToFloat64(m.amountConfirmed.WithLabelValues("Efectivo")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.paymentsConfirmed.WithLabelValues("unknown")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.paymentsRejected.WithLabelValues("invalid_state")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.paymentsFailed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.quotationsConverted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.movementsCanceled.WithLabelValues("SALE")))
}

func TestLedgerMetrics_HTTP(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, Config{})

	m.ObserveRequest("GET", "/api/movements/:id", 200, 15*time.Millisecond)
	m.ObserveRequest("GET", "/api/movements/:id", 404, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/movements/:id", "404")))
	n, err := testutil.GatherAndCount(reg, "http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNew_DobleRegistroFalla(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg, Config{})
	assert.Panics(t, func() { New(reg, Config{}) })
}
