package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "learn"

// Prometheus holds the prometheus collectors.
type Prometheus struct {
	Epochs      *prometheus.CounterVec
	Loss        *prometheus.GaugeVec
	Samples     *prometheus.CounterVec
	Predictions *prometheus.CounterVec
}

// NewPrometheusMetrics creates the prometheus collectors.
func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Epochs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "epochs",
			}, []string{"model"}),
		Loss: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "loss",
			}, []string{"model"}),
		Samples: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "samples",
			}, []string{"model"}),
		Predictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "predictions",
			}, []string{"model", "task"}),
	}
}

func (p Prometheus) collectors() []prometheus.Collector {
	return []prometheus.Collector{p.Epochs, p.Loss, p.Samples, p.Predictions}
}
