package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// BroadcastLength returns the common batch length of two slice lengths. A
// length of 1 on either side is promoted to the other; any other mismatch is
// an error.
func BroadcastLength(n1, n2 int) (int, error) {
	switch {
	case n1 == n2:
		return n1, nil
	case n1 == 1:
		return n2, nil
	case n2 == 1:
		return n1, nil
	default:
		return 0, NewBatchLengthError(n1, n2)
	}
}

// pick indexes into a batch, holding a length-1 batch fixed so it broadcasts.
func pick[T any](xs []T, i int) T {
	if len(xs) == 1 {
		return xs[0]
	}
	return xs[i]
}

func checkRotationShape(m mat.Matrix) error {
	r, c := m.Dims()
	if r != 3 || c != 3 {
		return NewRotationMatrixShapeError(r, c)
	}
	return nil
}

func identity3() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
}

func vecDense(v r3.Vector) *mat.VecDense {
	return mat.NewVecDense(3, []float64{v.X, v.Y, v.Z})
}

// rotate applies rot to v as a column vector.
func rotate(rot mat.Matrix, v r3.Vector) r3.Vector {
	var out mat.VecDense
	out.MulVec(rot, vecDense(v))
	return r3.Vector{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}
