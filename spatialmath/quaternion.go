package spatialmath

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// QuaternionXYZW is a quaternion stored with the real component last, the
// ordering used by many robotics message formats.
type QuaternionXYZW [4]float64

// QuatToXYZW reorders a real-first quaternion into real-last storage. This is
// a pure component reorder with no normalization.
func QuatToXYZW(q quat.Number) QuaternionXYZW {
	return QuaternionXYZW{q.Imag, q.Jmag, q.Kmag, q.Real}
}

// QuatFromXYZW reorders a real-last quaternion into gonum's real-first form.
// Inverse of QuatToXYZW.
func QuatFromXYZW(q QuaternionXYZW) quat.Number {
	return quat.Number{Real: q[3], Imag: q[0], Jmag: q[1], Kmag: q[2]}
}

// QuatToRotationMatrix converts a real-first quaternion to a rotation matrix.
// The input is not renormalized, so a non-unit quaternion yields a
// non-orthonormal result.
func QuatToRotationMatrix(q quat.Number) *mat.Dense {
	r, i, j, k := q.Real, q.Imag, q.Jmag, q.Kmag
	twoS := 2.0 / (r*r + i*i + j*j + k*k)
	return mat.NewDense(3, 3, []float64{
		1 - twoS*(j*j+k*k), twoS * (i*j - k*r), twoS * (i*k + j*r),
		twoS * (i*j + k*r), 1 - twoS*(i*i+k*k), twoS * (j*k - i*r),
		twoS * (i*k - j*r), twoS * (j*k + i*r), 1 - twoS*(i*i+j*j),
	})
}

// QuatToRotationMatrixBatch converts a batch of quaternions to rotation
// matrices.
func QuatToRotationMatrixBatch(qs []quat.Number) []*mat.Dense {
	out := make([]*mat.Dense, len(qs))
	for i, q := range qs {
		out[i] = QuatToRotationMatrix(q)
	}
	return out
}

// Flip will multiply a quaternion by -1, returning a quaternion representing
// the same orientation but in the opposing octant.
func Flip(q quat.Number) quat.Number {
	return quat.Number{Real: -q.Real, Imag: -q.Imag, Jmag: -q.Jmag, Kmag: -q.Kmag}
}

// QuaternionAlmostEqual is an equality check up to a tolerance that treats a
// quaternion and its flip as the same orientation.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	return quat.Abs(quat.Sub(a, b)) < tol || quat.Abs(quat.Sub(a, Flip(b))) < tol
}
