package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Resultados de una entrega de comanda.
const (
	OutcomeComplete         = "complete"
	OutcomePartial          = "partial"
	OutcomeAlreadyDelivered = "already_delivered"
	OutcomeConflict         = "conflict"
	OutcomeError            = "error"
)

// Resultados por fila de importación.
const (
	ImportCreated = "created"
	ImportUpdated = "updated"
	ImportError   = "error"
)

// StockMetrics métricas del motor de entregas e importación. Un valor nil no registra nada.
type StockMetrics struct {
	fulfillments  *prometheus.CounterVec
	duration      prometheus.Histogram
	unitsDeducted prometheus.Counter
	unitsShort    prometheus.Counter
	importRows    *prometheus.CounterVec
}

// NewStockMetrics registra las métricas en reg. Con reg nil devuelve un recolector inerte.
func NewStockMetrics(reg prometheus.Registerer) *StockMetrics {
	if reg == nil {
		return &StockMetrics{}
	}
	m := &StockMetrics{
		fulfillments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "order_fulfillments_total",
			Help: "Entregas de comandas por resultado.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "order_fulfillment_duration_seconds",
			Help:    "Duración de la transacción de entrega.",
			Buckets: prometheus.DefBuckets,
		}),
		unitsDeducted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stock_units_deducted_total",
			Help: "Unidades descontadas de ubicaciones por entregas.",
		}),
		unitsShort: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stock_units_short_total",
			Help: "Unidades solicitadas que quedaron pendientes por falta de stock.",
		}),
		importRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_import_rows_total",
			Help: "Filas procesadas por la importación de catálogo.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.fulfillments, m.duration, m.unitsDeducted, m.unitsShort, m.importRows)
	return m
}

// ObserveFulfillment registra el resultado de una entrega.
func (m *StockMetrics) ObserveFulfillment(outcome string, deducted, short int, d time.Duration) {
	if m == nil || m.fulfillments == nil {
		return
	}
	m.fulfillments.WithLabelValues(outcome).Inc()
	m.duration.Observe(d.Seconds())
	if deducted > 0 {
		m.unitsDeducted.Add(float64(deducted))
	}
	if short > 0 {
		m.unitsShort.Add(float64(short))
	}
}

// IncImportRow cuenta una fila importada con su resultado.
func (m *StockMetrics) IncImportRow(result string) {
	if m == nil || m.importRows == nil {
		return
	}
	m.importRows.WithLabelValues(result).Inc()
}
