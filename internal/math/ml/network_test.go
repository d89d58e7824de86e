package ml

import (
	"errors"
	"testing"

	"github.com/drakos74/free-learn/infra/config"
	mlmath "github.com/drakos74/free-learn/internal/math"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

var xor = []Sample{
	{Input: []float64{0, 0}, Target: []float64{0, 0}},
	{Input: []float64{0, 1}, Target: []float64{0, 1}},
	{Input: []float64{1, 0}, Target: []float64{0, 1}},
	{Input: []float64{1, 1}, Target: []float64{1, 1}},
}

func TestNewNetwork(t *testing.T) {

	type test struct {
		sizes [][2]int
		err   error
	}

	tests := map[string]test{
		"valid": {
			sizes: [][2]int{{2, 2}, {3, 2}, {1, 3}},
		},
		"input-only": {
			sizes: [][2]int{{2, 2}},
		},
		"empty": {
			sizes: [][2]int{},
			err:   ErrInvalidTopology,
		},
		"zero-neurons": {
			sizes: [][2]int{{2, 2}, {0, 2}},
			err:   ErrInvalidTopology,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			net, err := NewNetwork(Base().WithSeed(1), tt.sizes...)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err))
				return
			}
			assert.NoError(t, err)
			assert.Len(t, net.Layers(), len(tt.sizes))
			assert.NotEmpty(t, net.ID())
			assert.Equal(t, DefaultRate, net.Rate())
		})
	}

}

func TestNetwork_Seed(t *testing.T) {

	a, err := NewNetwork(Base().WithSeed(7), [2]int{2, 2}, [2]int{3, 2})
	require.NoError(t, err)
	b, err := NewNetwork(Base().WithSeed(7), [2]int{2, 2}, [2]int{3, 2})
	require.NoError(t, err)

	for i := range a.Layers() {
		assert.Equal(t, a.Layers()[i].Weights(), b.Layers()[i].Weights())
		assert.Equal(t, a.Layers()[i].Bias(), b.Layers()[i].Bias())
	}
	assert.NotEqual(t, a.ID(), b.ID())

}

func TestNetwork_Predict(t *testing.T) {

	net, err := NewNetwork(Base().WithSeed(3), [2]int{2, 2}, [2]int{3, 2}, [2]int{2, 3})
	require.NoError(t, err)

	first, err := net.Predict([]float64{0.3, 0.7})
	assert.NoError(t, err)
	assert.Len(t, first, 2)

	second, err := net.Predict([]float64{0.3, 0.7})
	assert.NoError(t, err)
	assert.Equal(t, first, second)

	last := net.Layers()[2]
	assert.Equal(t, first, last.Activations())

	_, err = net.Predict([]float64{1})
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

}

func TestNetwork_PredictChainMismatch(t *testing.T) {

	// the second layer does not accept the width of the first one
	net, err := NewNetwork(Base().WithSeed(3), [2]int{2, 2}, [2]int{3, 4})
	require.NoError(t, err)

	_, err = net.Predict([]float64{0, 1})
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

}

func TestNetwork_Backpropagate(t *testing.T) {

	net, err := NewNetwork(Base().WithRate(1), [2]int{1, 1}, [2]int{1, 1}, [2]int{1, 1})
	require.NoError(t, err)
	for _, layer := range net.layers {
		layer.weights = [][]float64{{0}}
		layer.bias = []float64{0}
	}

	predictions, err := net.Predict([]float64{1})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5}, predictions)

	err = net.backpropagate([]float64{1}, predictions)
	assert.NoError(t, err)

	layers := net.Layers()

	// output layer : (1 - 0.5) * 0.5 * (1 - 0.5)
	assert.Equal(t, []float64{0.125}, layers[2].Gradients())
	assert.Equal(t, [][]float64{{0.0625}}, layers[2].Weights())
	assert.Equal(t, []float64{0.125}, layers[2].Bias())

	// hidden layer sees the already updated weight of the output layer : 0.0625 * 0.125 * 0.25
	assert.Equal(t, []float64{0.001953125}, layers[1].Gradients())
	assert.Equal(t, [][]float64{{0.0009765625}}, layers[1].Weights())
	assert.Equal(t, []float64{0.001953125}, layers[1].Bias())

	// input layer is left alone
	assert.Empty(t, layers[0].Gradients())
	assert.Equal(t, [][]float64{{0}}, layers[0].Weights())
	assert.Equal(t, []float64{0}, layers[0].Bias())

}

func TestNetwork_BackpropagateSigmoidDerivative(t *testing.T) {

	// the output gradient keeps the sigmoid form even for a linear-like activation
	net, err := NewNetwork(Base().WithActivation(mlmath.ReLU).WithRate(1), [2]int{1, 1}, [2]int{1, 1})
	require.NoError(t, err)
	net.layers[0].weights = [][]float64{{1}}
	net.layers[0].bias = []float64{0}
	net.layers[1].weights = [][]float64{{1}}
	net.layers[1].bias = []float64{1}

	predictions, err := net.Predict([]float64{1})
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, predictions)

	require.NoError(t, net.backpropagate([]float64{0}, predictions))
	// (0 - 2) * 2 * (1 - 2)
	assert.Equal(t, []float64{4}, net.Layers()[1].Gradients())

}

func TestNetwork_TrainZeroEpochs(t *testing.T) {

	net, err := NewNetwork(Base().WithSeed(5), [2]int{2, 2}, [2]int{3, 2}, [2]int{2, 3})
	require.NoError(t, err)

	weights := make([][][]float64, 0)
	biases := make([][]float64, 0)
	for _, layer := range net.Layers() {
		weights = append(weights, layer.Weights())
		biases = append(biases, layer.Bias())
	}

	called := false
	err = net.Train(xor, 0, func(epoch int, loss float64) bool {
		called = true
		return false
	})
	assert.NoError(t, err)
	assert.False(t, called)

	for i, layer := range net.Layers() {
		assert.Equal(t, weights[i], layer.Weights())
		assert.Equal(t, biases[i], layer.Bias())
	}

}

func TestNetwork_TrainXOR(t *testing.T) {

	var cfg NetworkConfig
	require.NoError(t, config.Load("../../../infra/config/xor.json", &cfg))

	net, err := NewNetworkFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, 0.1, net.Rate())

	epochs := 3000
	block := 300

	losses := make([]float64, 0, epochs)
	err = net.Train(xor, epochs, func(epoch int, loss float64) bool {
		losses = append(losses, loss)
		return false
	})
	assert.NoError(t, err)
	assert.Len(t, losses, epochs)

	means := make([]float64, 0)
	for i := 0; i < epochs; i += block {
		var sum float64
		for _, l := range losses[i : i+block] {
			sum += l
		}
		means = append(means, sum/float64(block))
	}

	for i := 1; i < len(means); i++ {
		assert.LessOrEqual(t, means[i], means[i-1]+1e-3, "block %d = %v", i, means)
	}
	assert.Less(t, means[len(means)-1], means[0])

}

func TestNetwork_TrainEarlyStop(t *testing.T) {

	net, err := NewNetwork(Base().WithSeed(11), [2]int{2, 2}, [2]int{3, 2}, [2]int{2, 3})
	require.NoError(t, err)

	epochs := make([]int, 0)
	err = net.Train(xor, 100, func(epoch int, loss float64) bool {
		epochs = append(epochs, epoch)
		assert.Greater(t, loss, 0.0)
		return epoch == 3
	})
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, epochs)

}

func TestNetwork_TrainWithoutCallback(t *testing.T) {

	net, err := NewNetwork(Base().WithSeed(11), [2]int{2, 2}, [2]int{3, 2}, [2]int{2, 3})
	require.NoError(t, err)

	before := net.Layers()[2].Weights()
	assert.NoError(t, net.Train(xor, 10, nil))
	assert.NotEqual(t, before, net.Layers()[2].Weights())

}

func TestNetwork_TrainAborts(t *testing.T) {

	type test struct {
		samples []Sample
	}

	tests := map[string]test{
		"input": {
			samples: []Sample{
				{Input: []float64{0, 0}, Target: []float64{0, 0}},
				{Input: []float64{0, 0, 1}, Target: []float64{0, 0}},
			},
		},
		"target": {
			samples: []Sample{
				{Input: []float64{0, 0}, Target: []float64{0}},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			net, err := NewNetwork(Base().WithSeed(11), [2]int{2, 2}, [2]int{3, 2}, [2]int{2, 3})
			require.NoError(t, err)

			calls := 0
			err = net.Train(tt.samples, 5, func(epoch int, loss float64) bool {
				calls++
				return false
			})
			assert.True(t, errors.Is(err, ErrDimensionMismatch))
			assert.Equal(t, 0, calls)
		})
	}

}

func TestNetwork_Loss(t *testing.T) {

	net, err := NewNetwork(Base().WithLoss(mlmath.MSE), [2]int{1, 1})
	require.NoError(t, err)
	assert.Equal(t, 2.5, net.Loss([]float64{1, 0}, []float64{0, 2}))

	net, err = NewNetwork(Base().WithLoss(mlmath.CrossEntropy), [2]int{1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.6931, net.Loss([]float64{0.5}, []float64{1}), 1e-4)

}
