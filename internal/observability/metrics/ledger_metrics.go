// Package metrics expone las señales del libro de ventas y pagos en Prometheus.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// Config etiquetas constantes de todas las series.
type Config struct {
	ServiceName string
	Environment string
}

// LedgerMetrics implementa ports.LedgerMetrics y las métricas HTTP.
type LedgerMetrics struct {
	paymentsConfirmed   *prometheus.CounterVec
	amountConfirmed     *prometheus.CounterVec
	paymentsRejected    *prometheus.CounterVec
	paymentsFailed      prometheus.Counter
	quotationsConverted prometheus.Counter
	movementsCanceled   *prometheus.CounterVec
	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
}

// New registra las series en registerer; nil usa el registro por defecto.
func New(registerer prometheus.Registerer, cfg Config) *LedgerMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "comercial-api"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{"service": serviceName, "env": environment}

	m := &LedgerMetrics{
		paymentsConfirmed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "ledger_payments_confirmed_total",
			Help:        "Pagos confirmados por método.",
			ConstLabels: constLabels,
		}, []string{"method"}),
		amountConfirmed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "ledger_payments_confirmed_amount",
			Help:        "Monto acumulado de pagos confirmados por método.",
			ConstLabels: constLabels,
		}, []string{"method"}),
		paymentsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "ledger_payments_rejected_total",
			Help:        "Confirmaciones rechazadas por razón.",
			ConstLabels: constLabels,
		}, []string{"reason"}),
		paymentsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "ledger_payments_failed_total",
			Help:        "Pagos marcados como fallidos.",
			ConstLabels: constLabels,
		}),
		quotationsConverted: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "ledger_quotations_converted_total",
			Help:        "Cotizaciones aceptadas y convertidas en venta.",
			ConstLabels: constLabels,
		}),
		movementsCanceled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "ledger_movements_canceled_total",
			Help:        "Movimientos cancelados por tipo.",
			ConstLabels: constLabels,
		}, []string{"type"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Peticiones HTTP por ruta y código.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "Latencia de peticiones HTTP.",
			Buckets:     []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			ConstLabels: constLabels,
		}, []string{"method", "route"}),
	}

	registerer.MustRegister(
		m.paymentsConfirmed,
		m.amountConfirmed,
		m.paymentsRejected,
		m.paymentsFailed,
		m.quotationsConverted,
		m.movementsCanceled,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

func (m *LedgerMetrics) PaymentConfirmed(method string, amount decimal.Decimal) {
	if method == "" {
		method = "unknown"
	}
	m.paymentsConfirmed.WithLabelValues(method).Inc()
	f, _ := amount.Float64()
	m.amountConfirmed.WithLabelValues(method).Add(f)
}

func (m *LedgerMetrics) PaymentRejected(reason string) {
	m.paymentsRejected.WithLabelValues(reason).Inc()
}

func (m *LedgerMetrics) PaymentFailed() { m.paymentsFailed.Inc() }

func (m *LedgerMetrics) QuotationConverted() { m.quotationsConverted.Inc() }

func (m *LedgerMetrics) MovementCanceled(movementType string) {
	m.movementsCanceled.WithLabelValues(movementType).Inc()
}

// ObserveRequest registra una petición ya respondida. route es el patrón, no la URL,
// para mantener baja la cardinalidad.
func (m *LedgerMetrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
