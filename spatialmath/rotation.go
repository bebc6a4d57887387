// Package spatialmath defines batched spatial mathematical operations for
// rigid bodies: rotation representation conversions, the SO(3) exponential
// map, rigid transform algebra, and numerically stable rotation angles.
//
// Rotation matrices ride in gonum 3x3 *mat.Dense values, translations and
// points in r3.Vector, and quaternions in gonum's real-first quat.Number.
// Batches are slices; a length-1 slice broadcasts against any other length.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// defaultExpMapEpsilon damps the denominators of Rodrigues' formula so a zero
// rotation vector maps to approximately the identity instead of 0/0.
const defaultExpMapEpsilon = 1e-14

// ExpMapSO3 computes the matrix exponential of skew(omega) via Rodrigues'
// formula, mapping an axis-angle vector to its rotation matrix.
func ExpMapSO3(omega r3.Vector) *mat.Dense {
	return ExpMapSO3Eps(omega, defaultExpMapEpsilon)
}

// ExpMapSO3Eps is ExpMapSO3 with a caller-chosen epsilon added to the angle
// in denominators. The epsilon introduces a slight bias near zero rotations,
// where the true limit is the identity.
func ExpMapSO3Eps(omega r3.Vector, epsilon float64) *mat.Dense {
	theta := omega.Norm()
	k := SkewSymmetricMatrix(omega)
	var k2 mat.Dense
	k2.Mul(k, k)

	var sinTerm, cosTerm mat.Dense
	sinTerm.Scale(math.Sin(theta)/(theta+epsilon), k)
	cosTerm.Scale((1.0-math.Cos(theta))/((theta+epsilon)*(theta+epsilon)), &k2)

	out := identity3()
	out.Add(out, &sinTerm)
	out.Add(out, &cosTerm)
	return out
}

// SO3RotationAngleCos returns the cosine of the rotation angle of m, computed
// from the trace. Cheaper than the angle itself and monotonic in it, which
// makes it usable directly as a distance term.
func SO3RotationAngleCos(m *mat.Dense) (float64, error) {
	if err := checkRotationShape(m); err != nil {
		return 0, err
	}
	return (m.At(0, 0) + m.At(1, 1) + m.At(2, 2) - 1.0) * 0.5, nil
}

// SO3RotationAngle returns the rotation angle of m. When cosBound > 0 the
// arccos is linearly extrapolated outside (-(1-cosBound), 1-cosBound);
// otherwise an exact arccos is used and angles at 0 and pi sit on the arccos
// singularity.
func SO3RotationAngle(m *mat.Dense, cosBound float64) (float64, error) {
	phiCos, err := SO3RotationAngleCos(m)
	if err != nil {
		return 0, err
	}
	if cosBound > 0 {
		bound := 1.0 - cosBound
		return AcosLinearExtrapolation(phiCos, AcosBounds{Lower: -bound, Upper: bound})
	}
	return math.Acos(phiCos), nil
}

// SO3RelativeAngle returns the angle of r1 * r2^T, the rotation carrying r2's
// frame onto r1's.
func SO3RelativeAngle(r1, r2 *mat.Dense, cosBound float64) (float64, error) {
	r12, err := relativeRotation(r1, r2)
	if err != nil {
		return 0, err
	}
	return SO3RotationAngle(r12, cosBound)
}

// SO3RelativeAngleCos returns the cosine of the relative angle between r1 and
// r2. It is symmetric in its arguments.
func SO3RelativeAngleCos(r1, r2 *mat.Dense) (float64, error) {
	r12, err := relativeRotation(r1, r2)
	if err != nil {
		return 0, err
	}
	return SO3RotationAngleCos(r12)
}

// SO3RelativeAngleBatch computes relative angles over two rotation batches
// with length-1 promotion.
func SO3RelativeAngleBatch(r1, r2 []*mat.Dense, cosBound float64) ([]float64, error) {
	n, err := BroadcastLength(len(r1), len(r2))
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		if out[i], err = SO3RelativeAngle(pick(r1, i), pick(r2, i), cosBound); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// SO3RelativeAngleCosBatch computes relative angle cosines over two rotation
// batches with length-1 promotion.
func SO3RelativeAngleCosBatch(r1, r2 []*mat.Dense) ([]float64, error) {
	n, err := BroadcastLength(len(r1), len(r2))
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		if out[i], err = SO3RelativeAngleCos(pick(r1, i), pick(r2, i)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// QuaternionRelativeAngle returns the angle between two unit quaternions from
// their dot product. With cosBound > 0 the arccos is linearly extrapolated;
// otherwise the exact arccos is doubled to cover the two-to-one mapping of
// unit quaternions onto SO(3). The factor of two applies only on the exact
// branch; the two branches are intentionally not unified.
func QuaternionRelativeAngle(q1, q2 quat.Number, cosBound float64) (float64, error) {
	thetaCos := q1.Real*q2.Real + q1.Imag*q2.Imag + q1.Jmag*q2.Jmag + q1.Kmag*q2.Kmag
	if cosBound > 0 {
		bound := 1.0 - cosBound
		return AcosLinearExtrapolation(thetaCos, AcosBounds{Lower: -bound, Upper: bound})
	}
	return 2 * math.Acos(thetaCos), nil
}

// QuaternionRelativeAngleBatch computes relative angles over two quaternion
// batches with length-1 promotion.
func QuaternionRelativeAngleBatch(q1, q2 []quat.Number, cosBound float64) ([]float64, error) {
	n, err := BroadcastLength(len(q1), len(q2))
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		if out[i], err = QuaternionRelativeAngle(pick(q1, i), pick(q2, i), cosBound); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func relativeRotation(r1, r2 *mat.Dense) (*mat.Dense, error) {
	if err := checkRotationShape(r1); err != nil {
		return nil, err
	}
	if err := checkRotationShape(r2); err != nil {
		return nil, err
	}
	var r12 mat.Dense
	r12.Mul(r1, r2.T())
	return &r12, nil
}
