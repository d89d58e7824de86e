package ml

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/drakos74/free-learn/internal/buffer"
	xmachina "github.com/drakos74/go-ex-machina/xmachina/ml"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Sample is one training example.
type Sample struct {
	Input  []float64
	Target []float64
}

// EpochCallback is called after every epoch with the mean loss of the epoch.
// Returning true stops the training.
type EpochCallback func(epoch int, loss float64) bool

// Network is a feed forward network trained by backpropagation.
// The first layer takes the raw input and is never updated.
type Network struct {
	id       string
	layers   []*Layer
	settings Settings
}

// NewNetwork creates a network with one layer per [neurons, inputs] pair, the input layer first.
// It is up to the caller to chain the sizes, a mismatch surfaces on the first forward pass.
func NewNetwork(settings Settings, sizes ...[2]int) (*Network, error) {
	if len(sizes) == 0 {
		return nil, fmt.Errorf("network needs at least one layer: %w", ErrInvalidTopology)
	}
	settings = settings.withDefaults()

	seed := settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))

	layers := make([]*Layer, len(sizes))
	for i, size := range sizes {
		if size[0] <= 0 || size[1] <= 0 {
			return nil, fmt.Errorf("layer %d has size %v: %w", i, size, ErrInvalidTopology)
		}
		layers[i] = newLayer(size[0], size[1], settings.Activation, rnd)
	}

	return &Network{
		id:       uuid.New().String(),
		layers:   layers,
		settings: settings,
	}, nil
}

// NewNetworkFromConfig creates a network out of its declarative config.
func NewNetworkFromConfig(cfg NetworkConfig) (*Network, error) {
	settings, err := cfg.Settings()
	if err != nil {
		return nil, fmt.Errorf("could not resolve network config: %w", err)
	}
	return NewNetwork(settings, cfg.Layers...)
}

// ID returns the network id.
func (n *Network) ID() string {
	return n.id
}

// Rate returns the learning rate.
func (n *Network) Rate() float64 {
	return n.settings.Rate
}

// Layers returns the layers of the network, input layer first.
func (n *Network) Layers() []*Layer {
	layers := make([]*Layer, len(n.layers))
	copy(layers, n.layers)
	return layers
}

// Predict runs the input through all layers and returns the output of the last one.
func (n *Network) Predict(inputs []float64) ([]float64, error) {
	out, err := n.predict(inputs)
	if err != nil {
		return nil, err
	}
	return clone(out), nil
}

func (n *Network) predict(inputs []float64) ([]float64, error) {
	out := inputs
	for i, layer := range n.layers {
		var err error
		out, err = layer.forward(out)
		if err != nil {
			return nil, fmt.Errorf("could not forward layer %d: %w", i, err)
		}
	}
	return out, nil
}

// Loss computes the loss of the predictions against the targets.
func (n *Network) Loss(predictions, targets []float64) float64 {
	return n.settings.Loss(predictions, targets)
}

// backpropagate goes from the output layer down to the first hidden one,
// computing the gradients of each layer and updating it right away.
// Hidden layers read the weights of the layer above after its update.
// NOTE : the output gradient uses the sigmoid derivative whatever the activation function is.
func (n *Network) backpropagate(targets, predictions []float64) error {
	last := len(n.layers) - 1
	if len(targets) != n.layers[last].neurons {
		return fmt.Errorf("network has %d outputs but got %d targets: %w", n.layers[last].neurons, len(targets), ErrDimensionMismatch)
	}
	rate := n.settings.Rate
	for i := last; i > 0; i-- {
		layer := n.layers[i]
		gradient := make([]float64, layer.neurons)
		for j := range gradient {
			a := layer.activation[j]
			if i == last {
				gradient[j] = (targets[j] - predictions[j]) * xmachina.Sigmoid.D(a)
				continue
			}
			next := n.layers[i+1]
			var sum float64
			for k := 0; k < next.neurons; k++ {
				sum += next.weights[k][j] * next.gradient[k]
			}
			gradient[j] = sum * xmachina.Sigmoid.D(a)
		}
		layer.gradient = gradient

		prev := n.layers[i-1].activation
		for j, w := range layer.weights {
			for k := range w {
				w[k] += rate * gradient[j] * prev[k]
			}
			layer.bias[j] += rate * gradient[j]
		}
	}
	return nil
}

// step runs one sample through forward, loss and backward and returns its loss.
func (n *Network) step(sample Sample) (float64, error) {
	predictions, err := n.predict(sample.Input)
	if err != nil {
		return 0, err
	}
	if len(predictions) != len(sample.Target) {
		return 0, fmt.Errorf("network has %d outputs but got %d targets: %w", len(predictions), len(sample.Target), ErrDimensionMismatch)
	}
	loss := n.Loss(predictions, sample.Target)
	if err := n.backpropagate(sample.Target, predictions); err != nil {
		return 0, err
	}
	return loss, nil
}

// Train runs the given number of epochs over the samples in order.
// Any sample that does not fit the network aborts the training.
func (n *Network) Train(samples []Sample, epochs int, onEpoch EpochCallback) error {
	for epoch := 1; epoch <= epochs; epoch++ {
		stats := buffer.NewStats()
		for s, sample := range samples {
			loss, err := n.step(sample)
			if err != nil {
				log.Error().
					Err(err).
					Str("network", n.id).
					Int("epoch", epoch).
					Int("sample", s).
					Msg("could not train network")
				return fmt.Errorf("could not train on sample %d of epoch %d: %w", s, epoch, err)
			}
			stats.Push(loss)
		}
		loss := stats.Mean()
		n.settings.Metrics.Epoch(n.id, loss)
		n.settings.Metrics.Samples(n.id, len(samples))
		log.Debug().
			Str("network", n.id).
			Int("epoch", epoch).
			Float64("loss", loss).
			Float64("min", stats.Min()).
			Float64("max", stats.Max()).
			Float64("stdev", stats.StDev()).
			Msg("epoch")
		if onEpoch != nil && onEpoch(epoch, loss) {
			log.Info().
				Str("network", n.id).
				Int("epoch", epoch).
				Int("epochs", epochs).
				Float64("loss", loss).
				Msg("stop training")
			return nil
		}
	}
	log.Info().
		Str("network", n.id).
		Int("epochs", epochs).
		Int("samples", len(samples)).
		Msg("training complete")
	return nil
}
