package spatialmath

import "github.com/pkg/errors"

// NewInvalidAcosBoundsError is returned when an arccos bound pair is not
// ordered or leaves the open interval (-1, 1).
func NewInvalidAcosBoundsError(lower, upper float64) error {
	if lower > upper {
		return errors.Errorf("arccos lower bound %v is greater than upper bound %v", lower, upper)
	}
	return errors.Errorf("arccos bounds (%v, %v) must both be within (-1, 1)", lower, upper)
}

// NewRotationMatrixShapeError is returned when a matrix expected to be a
// rotation does not have 3x3 dimensions.
func NewRotationMatrixShapeError(r, c int) error {
	return errors.Errorf("input has to be a 3x3 matrix, got %dx%d", r, c)
}

// NewBatchLengthError is returned when two batch lengths cannot be broadcast
// together, i.e. they differ and neither is 1.
func NewBatchLengthError(n1, n2 int) error {
	return errors.Errorf("batch lengths %d and %d cannot be broadcast together", n1, n2)
}
