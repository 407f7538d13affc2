package metrics

import (
	"net/http"

	"autovalue/pkg/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg              *prometheus.Registry
	Valuations       prometheus.Counter
	ValuationErrors  prometheus.Counter
	ValuationLatency prometheus.Histogram
	Degraded         prometheus.Gauge
	ModelAccuracy    prometheus.Gauge
	ModelMAE         prometheus.Gauge
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	valuations := prometheus.NewCounter(prometheus.CounterOpts{Name: "autovalue_valuations_total"})
	valuationErrors := prometheus.NewCounter(prometheus.CounterOpts{Name: "autovalue_valuation_errors_total"})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "autovalue_valuation_latency_seconds",
		Buckets: prometheus.DefBuckets,
	})
	degraded := prometheus.NewGauge(prometheus.GaugeOpts{Name: "autovalue_degraded"})
	accuracy := prometheus.NewGauge(prometheus.GaugeOpts{Name: "autovalue_model_accuracy_percent"})
	mae := prometheus.NewGauge(prometheus.GaugeOpts{Name: "autovalue_model_mae"})

	r.MustRegister(valuations, valuationErrors, latency, degraded, accuracy, mae)
	return &Registry{
		reg:              r,
		Valuations:       valuations,
		ValuationErrors:  valuationErrors,
		ValuationLatency: latency,
		Degraded:         degraded,
		ModelAccuracy:    accuracy,
		ModelMAE:         mae,
	}
}

// SetModel records the loaded model's accuracy figures.
func (r *Registry) SetModel(m model.Metadata) {
	r.Degraded.Set(0)
	r.ModelAccuracy.Set(m.Accuracy)
	r.ModelMAE.Set(m.MAE)
}

// SetDegraded marks the service as running without a model.
func (r *Registry) SetDegraded() { r.Degraded.Set(1) }

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
