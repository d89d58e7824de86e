package math

import (
	"math"

	"github.com/drakos74/go-ex-machina/xmath"
)

// epsilon keeps the logarithm of the cross entropy finite.
const epsilon = 1e-15

// Loss computes the error of the predictions against the targets.
// Both slices are expected to have the same length.
type Loss func(predictions, targets []float64) float64

// MSE is the mean of the squared differences.
func MSE(predictions, targets []float64) float64 {
	if len(predictions) == 0 {
		return 0
	}
	p := xmath.Vector(predictions)
	sq := p.Diff(xmath.Vector(targets)).Pow(2)
	return sq.Sum() / float64(len(predictions))
}

// CrossEntropy is the mean binary cross entropy.
// Predictions are clipped into (0,1) before taking the logarithm.
func CrossEntropy(predictions, targets []float64) float64 {
	if len(predictions) == 0 {
		return 0
	}
	clip := xmath.Clip(epsilon, 1-epsilon)
	var sum float64
	for i := range predictions {
		p := clip(predictions[i])
		sum += targets[i]*math.Log(p) + (1-targets[i])*math.Log(1-p)
	}
	return -1 * sum / float64(len(predictions))
}
