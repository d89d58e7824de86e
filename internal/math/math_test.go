package math

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActivation_Range(t *testing.T) {

	for x := -50.0; x <= 50.0; x += 0.25 {
		s := Sigmoid(x)
		assert.True(t, s > 0 && s <= 1, "sigmoid(%f) = %f", x, s)
		h := TanH(x)
		assert.True(t, h >= -1 && h <= 1, "tanh(%f) = %f", x, h)
		assert.Equal(t, math.Max(x, 0), ReLU(x))
	}

	// strict bounds hold where the float64 range can still express them
	for x := -10.0; x <= 10.0; x += 0.5 {
		s := Sigmoid(x)
		assert.True(t, s > 0 && s < 1)
		h := TanH(x)
		assert.True(t, h > -1 && h < 1)
	}

	assert.Equal(t, 0.5, Sigmoid(0))
	assert.Equal(t, 0.0, TanH(0))

}

func TestLerp(t *testing.T) {

	type test struct {
		a, b, t float64
		output  float64
	}

	tests := map[string]test{
		"start": {
			a: 2, b: 4, t: 0,
			output: 2,
		},
		"end": {
			a: 2, b: 4, t: 1,
			output: 4,
		},
		"middle": {
			a: -1, b: 1, t: 0.5,
			output: 0,
		},
		"extrapolate": {
			a: 0, b: 1, t: 2,
			output: 2,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.output, Lerp(tt.a, tt.b, tt.t))
		})
	}

}

func TestMSE(t *testing.T) {

	assert.Equal(t, 0.0, MSE([]float64{1, 2}, []float64{1, 2}))
	assert.Equal(t, 2.5, MSE([]float64{1, 0}, []float64{0, 2}))
	assert.Equal(t, 0.0, MSE([]float64{}, []float64{}))

}

func TestCrossEntropy(t *testing.T) {

	perfect := CrossEntropy([]float64{1, 0}, []float64{1, 0})
	assert.InDelta(t, 0, perfect, 1e-12)

	half := CrossEntropy([]float64{0.5}, []float64{1})
	assert.InDelta(t, math.Log(2), half, 1e-12)

	wrong := CrossEntropy([]float64{0}, []float64{1})
	assert.False(t, math.IsInf(wrong, 0))
	assert.Greater(t, wrong, half)

}
