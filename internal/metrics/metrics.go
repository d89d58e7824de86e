package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Observer is the process wide metrics tracker used by the models unless they are given their own.
var Observer = NewLearning()

func init() {
	Observer.MustRegister(prometheus.DefaultRegisterer)
}

// Learning tracks training and prediction activity per model.
type Learning struct {
	prometheus Prometheus
}

// NewLearning creates a new unregistered metrics tracker.
func NewLearning() *Learning {
	return &Learning{
		prometheus: NewPrometheusMetrics(),
	}
}

// Collectors gives access to the underlying prometheus collectors.
func (l *Learning) Collectors() Prometheus {
	return l.prometheus
}

// Register registers all collectors with the given registry.
func (l *Learning) Register(reg prometheus.Registerer) error {
	for _, c := range l.prometheus.collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister registers all collectors and panics on failure.
func (l *Learning) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(l.prometheus.collectors()...)
}

// Epoch records a finished epoch with its mean loss.
func (l *Learning) Epoch(model string, loss float64) {
	if l == nil {
		return
	}
	l.prometheus.Epochs.WithLabelValues(model).Inc()
	l.prometheus.Loss.WithLabelValues(model).Set(loss)
}

// Samples records samples consumed by a model, either for training or for storage.
func (l *Learning) Samples(model string, count int) {
	if l == nil {
		return
	}
	l.prometheus.Samples.WithLabelValues(model).Add(float64(count))
}

// Prediction records a prediction for the given task.
func (l *Learning) Prediction(model, task string) {
	if l == nil {
		return
	}
	l.prometheus.Predictions.WithLabelValues(model, task).Inc()
}
