// Package metrics implementa ports.Metrics con contadores Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tenebrio"

// Prometheus contadores del ledger y del registro de producción sobre un registry propio.
type Prometheus struct {
	registry    *prometheus.Registry
	stockMoves  *prometheus.CounterVec
	productions *prometheus.CounterVec
	rejections  prometheus.Counter
}

// NewPrometheus crea el registry con los colectores de proceso y runtime de Go.
func NewPrometheus() *Prometheus {
	reg := prometheus.NewRegistry()
	p := &Prometheus{
		registry: reg,
		stockMoves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stock",
			Name:      "moves_total",
			Help:      "Movimientos de stock confirmados por tipo (in/out).",
		}, []string{"move_type"}),
		productions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "production",
			Name:      "records_total",
			Help:      "Registros de producción por resultado (committed, validation, rolled_back).",
		}, []string{"outcome"}),
		rejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stock",
			Name:      "out_rejected_total",
			Help:      "Salidas rechazadas por stock insuficiente.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		p.stockMoves,
		p.productions,
		p.rejections,
	)
	return p
}

func (p *Prometheus) StockMoveRecorded(moveType string) {
	p.stockMoves.WithLabelValues(moveType).Inc()
}

func (p *Prometheus) ProductionRecorded(outcome string) {
	p.productions.WithLabelValues(outcome).Inc()
}

func (p *Prometheus) StockOutRejected() {
	p.rejections.Inc()
}

// Registry expuesto para tests y colectores adicionales.
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

// Handler handler HTTP en formato de exposición de Prometheus.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
