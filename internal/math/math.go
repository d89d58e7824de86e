package math

import (
	"github.com/drakos74/go-ex-machina/xmachina/ml"
)

// Activation maps the raw weighted sum of a neuron to its output.
type Activation func(x float64) float64

// Sigmoid is the logistic function, with output in (0,1).
func Sigmoid(x float64) float64 {
	return ml.Sigmoid.F(x)
}

// ReLU returns max(x,0).
func ReLU(x float64) float64 {
	return ml.ReLU.F(x)
}

// TanH is the hyperbolic tangent, with output in (-1,1).
func TanH(x float64) float64 {
	return ml.TanH.F(x)
}

// Lerp linearly interpolates between a and b,
// t = 0 gives a and t = 1 gives b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
