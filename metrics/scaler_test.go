package metrics

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestFitMinMax(t *testing.T) {
	data := []r3.Vector{
		{X: 1, Y: -2, Z: 0},
		{X: 3, Y: 2, Z: 10},
		{X: 2, Y: 0, Z: 5},
	}
	b := FitMinMax(data)
	test.That(t, b.Min, test.ShouldResemble, r3.Vector{X: 1, Y: -2, Z: 0})
	test.That(t, b.Max, test.ShouldResemble, r3.Vector{X: 3, Y: 2, Z: 10})

	scaled := b.ScaleBatch(data)
	test.That(t, scaled[0].X, test.ShouldEqual, 0)
	test.That(t, scaled[1].X, test.ShouldEqual, 1)
	test.That(t, scaled[1].Y, test.ShouldEqual, 1)
	test.That(t, scaled[0].Y, test.ShouldEqual, 0)
	// interior values land strictly inside (0, 1)
	test.That(t, scaled[2].X, test.ShouldBeBetween, 0, 1)
	test.That(t, scaled[2].Z, test.ShouldBeBetween, 0, 1)
}

func TestGlobalBounds(t *testing.T) {
	data := []float64{4, -1, 2, 7}
	b := FitMinMaxGlobal(data)
	test.That(t, b.Min, test.ShouldEqual, -1)
	test.That(t, b.Max, test.ShouldEqual, 7)

	scaled := b.ScaleBatch(data)
	test.That(t, scaled[1], test.ShouldEqual, 0)
	test.That(t, scaled[3], test.ShouldEqual, 1)
	test.That(t, scaled[0], test.ShouldAlmostEqual, 5.0/8.0)
}

func TestGlobalBoundsDegenerateRange(t *testing.T) {
	// constant data leaves a zero range; the division is unguarded and the
	// NaN propagates to the caller
	b := FitMinMaxGlobal([]float64{2, 2, 2})
	test.That(t, math.IsNaN(b.Scale(2)), test.ShouldBeTrue)
}

func TestMinMaxScalerCaching(t *testing.T) {
	first := []r3.Vector{{X: 0}, {X: 10}}
	second := []r3.Vector{{X: 5}, {X: 20}}

	s := NewMinMaxScaler()
	test.That(t, s.Bounds(), test.ShouldBeNil)

	s.Scale(first)
	test.That(t, s.Bounds(), test.ShouldNotBeNil)
	test.That(t, s.Bounds().Max.X, test.ShouldEqual, 10)

	// the second batch is scaled with the first batch's cached bounds
	scaled := s.Scale(second)
	test.That(t, scaled[0].X, test.ShouldEqual, 0.5)
	test.That(t, scaled[1].X, test.ShouldEqual, 2)
}

func TestMinMaxScalerFromBounds(t *testing.T) {
	s := NewMinMaxScalerFromBounds(ScalerBounds{
		Min: r3.Vector{},
		Max: r3.Vector{X: 4, Y: 4, Z: 4},
	})
	scaled := s.Scale([]r3.Vector{{X: 1, Y: 2, Z: 3}})
	test.That(t, scaled[0], test.ShouldResemble, r3.Vector{X: 0.25, Y: 0.5, Z: 0.75})
}
