package ml

import (
	"fmt"
	"reflect"

	mlmath "github.com/drakos74/free-learn/internal/math"
	"github.com/drakos74/free-learn/internal/metrics"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
)

const (
	classification = "classification"
	regression     = "regression"
)

// Prediction is the outcome of a neighbor search.
type Prediction[L comparable] struct {
	// Label is the majority label, set only for classification.
	Label L
	// Votes is the number of neighbors carrying the majority label.
	Votes int
	// Value is the mean of the neighbor labels, set only for regression.
	Value     float64
	Neighbors []mlmath.Neighbor
}

// KNN predicts from the k nearest stored training points.
// Labels are arbitrary comparable values for classification, and numbers for regression.
type KNN[L comparable] struct {
	id         string
	k          int
	distance   mlmath.Distance
	normalize  bool
	regression bool
	features   [][]float64
	labels     []L
	metrics    *metrics.Learning
}

// NewKNN creates a new neighbor predictor for the k nearest points.
func NewKNN[L comparable](k int) *KNN[L] {
	return &KNN[L]{
		id:       uuid.New().String(),
		k:        k,
		features: make([][]float64, 0),
		labels:   make([]L, 0),
		metrics:  metrics.Observer,
	}
}

// NewKNNFromConfig creates a neighbor predictor out of its declarative config.
func NewKNNFromConfig[L comparable](cfg KNNConfig) (*KNN[L], error) {
	distance, err := Distance(cfg.Distance)
	if err != nil {
		return nil, fmt.Errorf("could not resolve knn config: %w", err)
	}
	return NewKNN[L](cfg.K).
		WithDistance(distance).
		WithNormalization(cfg.Normalize).
		WithRegression(cfg.Regression), nil
}

// WithDistance sets the distance metric, nil falls back to the euclidean distance.
func (knn *KNN[L]) WithDistance(distance mlmath.Distance) *KNN[L] {
	knn.distance = distance
	return knn
}

// WithNormalization enables min-max normalization of the features.
func (knn *KNN[L]) WithNormalization(normalize bool) *KNN[L] {
	knn.normalize = normalize
	return knn
}

// WithRegression switches from majority voting to averaging the labels.
func (knn *KNN[L]) WithRegression(regression bool) *KNN[L] {
	knn.regression = regression
	return knn
}

// WithMetrics sets the metrics tracker.
func (knn *KNN[L]) WithMetrics(m *metrics.Learning) *KNN[L] {
	knn.metrics = m
	return knn
}

// ID returns the predictor id.
func (knn *KNN[L]) ID() string {
	return knn.id
}

// Size returns the number of stored training points.
func (knn *KNN[L]) Size() int {
	return len(knn.features)
}

// Train appends the given points to the stored training data.
// With normalization enabled the batch is scaled on its own range only,
// so batches from separate calls do not share a common basis.
func (knn *KNN[L]) Train(features [][]float64, labels []L) error {
	if len(features) != len(labels) {
		return fmt.Errorf("%d features vs %d labels: %w", len(features), len(labels), ErrLabelMismatch)
	}
	if len(features) == 0 {
		return nil
	}
	dim := len(features[0])
	if len(knn.features) > 0 {
		dim = len(knn.features[0])
	}
	for i, f := range features {
		if len(f) != dim {
			return fmt.Errorf("feature %d has dimension %d instead of %d: %w", i, len(f), dim, ErrDimensionMismatch)
		}
	}

	if knn.normalize {
		features = mlmath.Normalize(features)
	} else {
		stored := make([][]float64, len(features))
		for i, f := range features {
			stored[i] = clone(f)
		}
		features = stored
	}

	knn.features = append(knn.features, features...)
	knn.labels = append(knn.labels, labels...)
	knn.metrics.Samples(knn.id, len(features))
	return nil
}

// Neighbors returns the k stored points closest to the given one.
func (knn *KNN[L]) Neighbors(feature []float64) ([]mlmath.Neighbor, error) {
	if len(knn.features) == 0 {
		return nil, ErrEmptyTrainingSet
	}
	if knn.k <= 0 {
		return nil, fmt.Errorf("k must be positive but was %d: %w", knn.k, ErrInvalidTopology)
	}
	if len(feature) != len(knn.features[0]) {
		return nil, fmt.Errorf("feature has dimension %d instead of %d: %w", len(feature), len(knn.features[0]), ErrDimensionMismatch)
	}

	query := feature
	if knn.normalize {
		// the stored points are already normalized, only the query is rescaled here
		points := make([][]float64, 0, len(knn.features)+1)
		points = append(points, feature)
		points = append(points, knn.features...)
		query = mlmath.Normalize(points)[0]
	}

	neighbors := mlmath.Nearest(query, knn.features, knn.k, knn.distance)
	for i := range neighbors {
		neighbors[i].Point = clone(neighbors[i].Point)
	}
	return neighbors, nil
}

// Predict returns the majority label of the nearest neighbors,
// or the mean of their labels for regression.
// Equal votes go to the label met first among the neighbors, closest first.
func (knn *KNN[L]) Predict(feature []float64) (Prediction[L], error) {
	var prediction Prediction[L]

	neighbors, err := knn.Neighbors(feature)
	if err != nil {
		log.Error().
			Err(err).
			Str("knn", knn.id).
			Int("k", knn.k).
			Int("size", len(knn.features)).
			Msg("could not search neighbors")
		return prediction, fmt.Errorf("could not predict: %w", err)
	}
	prediction.Neighbors = neighbors

	if knn.regression {
		values := make([]float64, len(neighbors))
		for i, n := range neighbors {
			v, ok := numeric(knn.labels[n.Index])
			if !ok {
				return prediction, fmt.Errorf("label '%v' at %d: %w", knn.labels[n.Index], n.Index, ErrNonNumericLabel)
			}
			values[i] = v
		}
		prediction.Value = floats.Sum(values) / float64(len(values))
		knn.metrics.Prediction(knn.id, regression)
		return prediction, nil
	}

	order := make([]L, 0)
	votes := make(map[L]int)
	for _, n := range neighbors {
		label := knn.labels[n.Index]
		if _, ok := votes[label]; !ok {
			order = append(order, label)
		}
		votes[label]++
	}
	for _, label := range order {
		if votes[label] > prediction.Votes {
			prediction.Label = label
			prediction.Votes = votes[label]
		}
	}
	knn.metrics.Prediction(knn.id, classification)
	return prediction, nil
}

// numeric reads any integer or float label, named types included.
func numeric(v interface{}) (float64, bool) {
	r := reflect.ValueOf(v)
	switch r.Kind() {
	case reflect.Float32, reflect.Float64:
		return r.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(r.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(r.Uint()), true
	}
	return 0, false
}
