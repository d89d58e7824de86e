package ml

import (
	"fmt"

	mlmath "github.com/drakos74/free-learn/internal/math"
	"github.com/drakos74/free-learn/internal/metrics"
)

// DefaultRate is the learning rate used when none is given.
const DefaultRate = 0.01

// Names of the registered functions, as used in the json configs.
const (
	Sigmoid      = "sigmoid"
	ReLU         = "relu"
	TanH         = "tanh"
	MSE          = "mse"
	CrossEntropy = "cross-entropy"
	Euclidean    = "euclidean"
)

var activations = map[string]mlmath.Activation{
	Sigmoid: mlmath.Sigmoid,
	ReLU:    mlmath.ReLU,
	TanH:    mlmath.TanH,
}

var losses = map[string]mlmath.Loss{
	MSE:          mlmath.MSE,
	CrossEntropy: mlmath.CrossEntropy,
}

var distances = map[string]mlmath.Distance{
	Euclidean: mlmath.Euclidean,
}

// Activation looks up an activation function by name, an empty name gives the default.
func Activation(name string) (mlmath.Activation, error) {
	if name == "" {
		return mlmath.Sigmoid, nil
	}
	if f, ok := activations[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("activation '%s': %w", name, ErrUnknownFunction)
}

// Loss looks up a loss function by name, an empty name gives the default.
func Loss(name string) (mlmath.Loss, error) {
	if name == "" {
		return mlmath.MSE, nil
	}
	if f, ok := losses[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("loss '%s': %w", name, ErrUnknownFunction)
}

// Distance looks up a distance metric by name, an empty name gives the default.
func Distance(name string) (mlmath.Distance, error) {
	if name == "" {
		return mlmath.Euclidean, nil
	}
	if f, ok := distances[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("distance '%s': %w", name, ErrUnknownFunction)
}

// Settings defines the training parameters of a network.
type Settings struct {
	Activation mlmath.Activation
	Loss       mlmath.Loss
	Rate       float64
	// Seed fixes the weight initialisation, zero seeds from the clock.
	Seed    int64
	Metrics *metrics.Learning
}

// Base returns the default settings.
func Base() Settings {
	return Settings{
		Activation: mlmath.Sigmoid,
		Loss:       mlmath.MSE,
		Rate:       DefaultRate,
		Metrics:    metrics.Observer,
	}
}

// WithActivation sets the activation function, nil keeps the current one.
func (s Settings) WithActivation(activation mlmath.Activation) Settings {
	if activation != nil {
		s.Activation = activation
	}
	return s
}

// WithLoss sets the loss function, nil keeps the current one.
func (s Settings) WithLoss(loss mlmath.Loss) Settings {
	if loss != nil {
		s.Loss = loss
	}
	return s
}

// WithRate sets the learning rate, a non positive rate keeps the current one.
func (s Settings) WithRate(rate float64) Settings {
	if rate > 0 {
		s.Rate = rate
	}
	return s
}

// WithSeed sets the seed for the weight initialisation.
func (s Settings) WithSeed(seed int64) Settings {
	s.Seed = seed
	return s
}

// WithMetrics sets the metrics tracker.
func (s Settings) WithMetrics(m *metrics.Learning) Settings {
	s.Metrics = m
	return s
}

// withDefaults fills in whatever was left empty.
func (s Settings) withDefaults() Settings {
	if s.Activation == nil {
		s.Activation = mlmath.Sigmoid
	}
	if s.Loss == nil {
		s.Loss = mlmath.MSE
	}
	if s.Rate <= 0 {
		s.Rate = DefaultRate
	}
	return s
}

// NetworkConfig is the declarative form of a network, as read from a json file.
type NetworkConfig struct {
	Activation string   `json:"activation"`
	Loss       string   `json:"loss"`
	Rate       float64  `json:"rate"`
	Seed       int64    `json:"seed"`
	Layers     [][2]int `json:"layers"`
}

// Settings resolves the named functions of the config.
func (c NetworkConfig) Settings() (Settings, error) {
	activation, err := Activation(c.Activation)
	if err != nil {
		return Settings{}, err
	}
	loss, err := Loss(c.Loss)
	if err != nil {
		return Settings{}, err
	}
	return Base().
		WithActivation(activation).
		WithLoss(loss).
		WithRate(c.Rate).
		WithSeed(c.Seed), nil
}

// KNNConfig is the declarative form of a neighbor predictor.
type KNNConfig struct {
	K          int    `json:"k"`
	Distance   string `json:"distance"`
	Normalize  bool   `json:"normalize"`
	Regression bool   `json:"regression"`
}
