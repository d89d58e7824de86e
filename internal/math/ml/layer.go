package ml

import (
	"fmt"
	"math/rand"

	mlmath "github.com/drakos74/free-learn/internal/math"
)

// Layer is a fully connected set of neurons.
// It owns its weights, biases and the state of the last forward and backward pass.
type Layer struct {
	neurons    int
	inputs     int
	weights    [][]float64 // neurons x inputs
	bias       []float64
	activation []float64
	gradient   []float64
	activate   mlmath.Activation
}

// newLayer creates a layer with weights and biases drawn uniformly from [-1,1).
func newLayer(neurons, inputs int, activate mlmath.Activation, rnd *rand.Rand) *Layer {
	weights := make([][]float64, neurons)
	for i := range weights {
		weights[i] = uniform(rnd, inputs)
	}
	return &Layer{
		neurons:  neurons,
		inputs:   inputs,
		weights:  weights,
		bias:     uniform(rnd, neurons),
		activate: activate,
	}
}

func uniform(rnd *rand.Rand, n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = rnd.Float64()*2 - 1 // range [-1,1)
	}
	return v
}

// Forward computes the activation of every neuron for the given inputs
// and keeps it as the current activation of the layer.
func (l *Layer) Forward(inputs []float64) ([]float64, error) {
	out, err := l.forward(inputs)
	if err != nil {
		return nil, err
	}
	return clone(out), nil
}

func (l *Layer) forward(inputs []float64) ([]float64, error) {
	if len(inputs) != l.inputs {
		return nil, fmt.Errorf("layer expects %d inputs but got %d: %w", l.inputs, len(inputs), ErrDimensionMismatch)
	}
	out := make([]float64, l.neurons)
	for i, w := range l.weights {
		raw := l.bias[i]
		for j, x := range inputs {
			raw += w[j] * x
		}
		out[i] = l.activate(raw)
	}
	l.activation = out
	return out, nil
}

// Neurons returns the number of neurons.
func (l *Layer) Neurons() int {
	return l.neurons
}

// Inputs returns the number of inputs.
func (l *Layer) Inputs() int {
	return l.inputs
}

// Weights returns a copy of the weight matrix.
func (l *Layer) Weights() [][]float64 {
	w := make([][]float64, len(l.weights))
	for i := range l.weights {
		w[i] = clone(l.weights[i])
	}
	return w
}

// Bias returns a copy of the biases.
func (l *Layer) Bias() []float64 {
	return clone(l.bias)
}

// Activations returns a copy of the activations of the last forward pass.
func (l *Layer) Activations() []float64 {
	return clone(l.activation)
}

// Gradients returns a copy of the gradients of the last backward pass.
// It is empty until the layer took part in one.
func (l *Layer) Gradients() []float64 {
	return clone(l.gradient)
}

func clone(v []float64) []float64 {
	if v == nil {
		return []float64{}
	}
	c := make([]float64, len(v))
	copy(c, v)
	return c
}
