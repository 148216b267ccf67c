// Package observability expone las métricas Prometheus de la API.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tu-usuario/medtrack-api/internal/application/reconcile"
)

var _ reconcile.Observer = (*PrometheusObserver)(nil)

// PrometheusObserver implementa el puerto Observer con un histograma de
// duraciones y un contador de corridas por operación.
type PrometheusObserver struct {
	duration *prometheus.HistogramVec
	total    *prometheus.CounterVec
}

// NewPrometheusObserver registra las métricas en el registry indicado
// (nil usa el registry por defecto).
func NewPrometheusObserver(reg prometheus.Registerer) *PrometheusObserver {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	o := &PrometheusObserver{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "medtrack",
			Subsystem: "reconcile",
			Name:      "operation_duration_seconds",
			Help:      "Duración de las operaciones de conciliación.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "success"}),
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medtrack",
			Subsystem: "reconcile",
			Name:      "operations_total",
			Help:      "Corridas de operaciones de conciliación.",
		}, []string{"operation", "success"}),
	}
	reg.MustRegister(o.duration, o.total)
	return o
}

// ObserveOperation registra duración y resultado de una operación.
func (o *PrometheusObserver) ObserveOperation(name string, d time.Duration, success bool) {
	labels := prometheus.Labels{"operation": name, "success": strconv.FormatBool(success)}
	o.duration.With(labels).Observe(d.Seconds())
	o.total.With(labels).Inc()
}

// Handler devuelve el handler HTTP del endpoint /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
