package metrics

import "github.com/pkg/errors"

func newVelocityLengthError(got, want int) error {
	return errors.Errorf("velocity batch length %d does not match pose batch length %d", got, want)
}
