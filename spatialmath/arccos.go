package spatialmath

import "math"

// DefaultAcosBound is the default cutoff beyond which arccos is replaced by
// its linear extrapolation.
const DefaultAcosBound = 1.0 - 1e-4

// AcosBounds delimits the interval on which AcosLinearExtrapolation evaluates
// an exact arccos. Outside of it the first-order Taylor expansion around the
// nearest bound is used instead. Both bounds must lie strictly within (-1, 1)
// and Lower may not exceed Upper.
type AcosBounds struct {
	Lower float64
	Upper float64
}

// DefaultAcosBounds returns the symmetric interval (-DefaultAcosBound, DefaultAcosBound).
func DefaultAcosBounds() AcosBounds {
	return AcosBounds{Lower: -DefaultAcosBound, Upper: DefaultAcosBound}
}

func (b AcosBounds) validate() error {
	if b.Lower > b.Upper || b.Lower <= -1.0 || b.Upper >= 1.0 {
		return NewInvalidAcosBoundsError(b.Lower, b.Upper)
	}
	return nil
}

// AcosLinearExtrapolation computes arccos(x) for x within bounds, and a
// linear extrapolation of arccos around the nearest bound otherwise. This
// keeps the result and its slope finite near x = ±1 where arccos has a
// vertical tangent, trading away accuracy for near-degenerate rotations.
func AcosLinearExtrapolation(x float64, bounds AcosBounds) (float64, error) {
	if err := bounds.validate(); err != nil {
		return 0, err
	}
	return acosExtrap(x, bounds), nil
}

// AcosLinearExtrapolationSlice is the elementwise batch form of
// AcosLinearExtrapolation; bounds are validated once for the whole batch.
func AcosLinearExtrapolationSlice(xs []float64, bounds AcosBounds) ([]float64, error) {
	if err := bounds.validate(); err != nil {
		return nil, err
	}
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = acosExtrap(x, bounds)
	}
	return out, nil
}

func acosExtrap(x float64, bounds AcosBounds) float64 {
	switch {
	case x >= bounds.Upper:
		return acosLinearApproximation(x, bounds.Upper)
	case x <= bounds.Lower:
		return acosLinearApproximation(x, bounds.Lower)
	default:
		return math.Acos(x)
	}
}

// acosLinearApproximation is the first-order Taylor expansion of arccos around x0.
func acosLinearApproximation(x, x0 float64) float64 {
	return (x-x0)*dacosDX(x0) + math.Acos(x0)
}

// dacosDX is the derivative of arccos at x.
func dacosDX(x float64) float64 {
	return -1.0 / math.Sqrt(1.0-x*x)
}
