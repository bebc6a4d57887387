package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// SkewSymmetricMatrix returns the 3x3 skew-symmetric matrix M of v, the so(3)
// generator satisfying M*p == v x p for any point p.
func SkewSymmetricMatrix(v r3.Vector) *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		0, -v.Z, v.Y,
		v.Z, 0, -v.X,
		-v.Y, v.X, 0,
	})
}

// CrossProduct computes a x b through the skew-symmetric form of a, keeping
// the operation consistent with the matrix algebra used elsewhere in the
// package.
func CrossProduct(a, b r3.Vector) r3.Vector {
	return rotate(SkewSymmetricMatrix(a), b)
}

// CrossProductBatch computes elementwise cross products over two batches.
// Either batch may have length 1, in which case it broadcasts against the
// other.
func CrossProductBatch(a, b []r3.Vector) ([]r3.Vector, error) {
	n, err := BroadcastLength(len(a), len(b))
	if err != nil {
		return nil, err
	}
	out := make([]r3.Vector, n)
	for i := range out {
		out[i] = CrossProduct(pick(a, i), pick(b, i))
	}
	return out, nil
}
