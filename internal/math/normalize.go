package math

import (
	"gonum.org/v1/gonum/floats"
)

// MinMax holds the range of one dimension.
type MinMax struct {
	Min float64
	Max float64
}

// Range computes the per-dimension min and max of the given points.
// All points are expected to have the dimension of the first one.
func Range(points [][]float64) []MinMax {
	if len(points) == 0 {
		return []MinMax{}
	}
	dim := len(points[0])
	mm := make([]MinMax, dim)
	column := make([]float64, len(points))
	for d := 0; d < dim; d++ {
		for i, p := range points {
			column[i] = p[d]
		}
		mm[d] = MinMax{
			Min: floats.Min(column),
			Max: floats.Max(column),
		}
	}
	return mm
}

// Normalize rescales every coordinate to (value - min) / (max - min).
// If no range is given, it is computed from the points themselves.
// A dimension with max == min maps to 0.
func Normalize(points [][]float64, minMax ...MinMax) [][]float64 {
	if len(minMax) == 0 {
		minMax = Range(points)
	}
	normalized := make([][]float64, len(points))
	for i, p := range points {
		n := make([]float64, len(p))
		for d, v := range p {
			span := minMax[d].Max - minMax[d].Min
			if span == 0 {
				continue
			}
			n[d] = (v - minMax[d].Min) / span
		}
		normalized[i] = n
	}
	return normalized
}
