package math

import (
	"sort"

	"github.com/drakos74/go-ex-machina/xmath"
)

// Distance measures how far apart two points are.
type Distance func(a, b []float64) float64

// Euclidean is the square root of the sum of squared per-dimension differences.
func Euclidean(a, b []float64) float64 {
	return xmath.Vector(a).Diff(xmath.Vector(b)).Norm()
}

// Neighbor is a point found by a nearest search.
type Neighbor struct {
	// Index is the position of the point in the searched set.
	Index    int
	Point    []float64
	Distance float64
}

// Nearest returns the k points closest to the given point, sorted ascending by distance.
// Equal distances keep the order of the searched set.
// If there are fewer than k points, all of them are returned.
func Nearest(point []float64, points [][]float64, k int, metric Distance) []Neighbor {
	if metric == nil {
		metric = Euclidean
	}
	neighbors := make([]Neighbor, len(points))
	for i, p := range points {
		neighbors[i] = Neighbor{
			Index:    i,
			Point:    p,
			Distance: metric(point, p),
		}
	}
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Distance < neighbors[j].Distance
	})
	if k < 0 {
		k = 0
	}
	if k < len(neighbors) {
		neighbors = neighbors[:k]
	}
	return neighbors
}
