// Package metrics provides composite position/rotation distance functions
// over batched poses, along with the min-max normalization they optionally
// apply to their input channels.
package metrics

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/floats"
)

// ScalerBounds holds per-axis minima and maxima for min-max scaling of a
// 3-vector channel.
type ScalerBounds struct {
	Min r3.Vector
	Max r3.Vector
}

// FitMinMax computes per-axis bounds over a batch of vectors.
func FitMinMax(data []r3.Vector) ScalerBounds {
	b := ScalerBounds{
		Min: r3.Vector{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: r3.Vector{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
	for _, v := range data {
		b.Min.X = math.Min(b.Min.X, v.X)
		b.Min.Y = math.Min(b.Min.Y, v.Y)
		b.Min.Z = math.Min(b.Min.Z, v.Z)
		b.Max.X = math.Max(b.Max.X, v.X)
		b.Max.Y = math.Max(b.Max.Y, v.Y)
		b.Max.Z = math.Max(b.Max.Z, v.Z)
	}
	return b
}

// Scale maps v per axis into [0, 1] relative to the fitted bounds. A zero
// range on an axis divides by zero and the Inf/NaN propagates; guarding
// against constant data is the caller's responsibility.
func (b ScalerBounds) Scale(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: (v.X - b.Min.X) / (b.Max.X - b.Min.X),
		Y: (v.Y - b.Min.Y) / (b.Max.Y - b.Min.Y),
		Z: (v.Z - b.Min.Z) / (b.Max.Z - b.Min.Z),
	}
}

// ScaleBatch scales every vector in a batch, returning a fresh slice.
func (b ScalerBounds) ScaleBatch(data []r3.Vector) []r3.Vector {
	out := make([]r3.Vector, len(data))
	for i, v := range data {
		out[i] = b.Scale(v)
	}
	return out
}

// GlobalBounds holds a single minimum and maximum for scaling flat data
// without a per-axis reduction.
type GlobalBounds struct {
	Min float64
	Max float64
}

// FitMinMaxGlobal computes global bounds over flat data.
func FitMinMaxGlobal(data []float64) GlobalBounds {
	return GlobalBounds{Min: floats.Min(data), Max: floats.Max(data)}
}

// Scale maps x into [0, 1] relative to the fitted bounds. Zero-range data
// divides by zero, as with ScalerBounds.Scale.
func (b GlobalBounds) Scale(x float64) float64 {
	return (x - b.Min) / (b.Max - b.Min)
}

// ScaleBatch scales every value in a batch, returning a fresh slice.
func (b GlobalBounds) ScaleBatch(data []float64) []float64 {
	out := make([]float64, len(data))
	for i, x := range data {
		out[i] = b.Scale(x)
	}
	return out
}

// MinMaxScaler scales vector batches into [0, 1] per axis, fitting its
// bounds from the first batch it sees and reusing them for every later call.
// Reusing one instance across unrelated datasets silently reuses the stale
// bounds; when the fitting data should be explicit, fit with FitMinMax and
// use NewMinMaxScalerFromBounds.
type MinMaxScaler struct {
	bounds *ScalerBounds
}

// NewMinMaxScaler returns a scaler that fits lazily on first use.
func NewMinMaxScaler() *MinMaxScaler {
	return &MinMaxScaler{}
}

// NewMinMaxScalerFromBounds returns a scaler with pre-fitted bounds.
func NewMinMaxScalerFromBounds(b ScalerBounds) *MinMaxScaler {
	return &MinMaxScaler{bounds: &b}
}

// Bounds returns the cached bounds, or nil before the first Scale call on a
// lazily fitting scaler.
func (s *MinMaxScaler) Bounds() *ScalerBounds {
	return s.bounds
}

// Scale normalizes the batch with the cached bounds, fitting them from this
// batch if the scaler has none yet.
func (s *MinMaxScaler) Scale(data []r3.Vector) []r3.Vector {
	if s.bounds == nil {
		b := FitMinMax(data)
		s.bounds = &b
	}
	return s.bounds.ScaleBatch(data)
}
