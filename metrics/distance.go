package metrics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"

	"github.com/TomCC7/torch-robotics/spatialmath"
)

// defaultQuatCosBound is the arccos extrapolation cutoff used for quaternion
// relative angles inside R3S3Distance.
const defaultQuatCosBound = 1e-4

// DistanceConfig weights the channels of the composite pose distances. A
// zero weight skips its channel's computation entirely rather than
// multiplying it away, so inputs for that channel may be absent.
type DistanceConfig struct {
	PosWeight    float64
	RotWeight    float64
	VelPosWeight float64
	VelRotWeight float64
	// NormalizeInput min-max normalizes each channel independently into
	// [0, 1] before distances are taken.
	NormalizeInput bool
}

// DefaultDistanceConfig weights every channel equally.
func DefaultDistanceConfig() DistanceConfig {
	return DistanceConfig{PosWeight: 1, RotWeight: 1, VelPosWeight: 1, VelRotWeight: 1}
}

// VelocityPair carries the linear and angular velocity channels of an SE(3)
// twist batch.
type VelocityPair struct {
	Linear  []r3.Vector
	Angular []r3.Vector
}

// R3S3Pose is a pose represented as a position together with a real-first
// unit quaternion.
type R3S3Pose struct {
	Position    r3.Vector
	Orientation quat.Number
}

// EuclideanDistance returns the weighted distances between aligned batches
// of positions, with optional velocity channels. Either side may have length
// 1 and broadcasts against the other. The velocity term is added only when
// both velocity batches are non-nil and VelPosWeight is nonzero.
func EuclideanDistance(batch, target, velBatch, velTarget []r3.Vector, cfg DistanceConfig) ([]float64, error) {
	if cfg.NormalizeInput {
		batch = NewMinMaxScaler().Scale(batch)
		target = NewMinMaxScaler().Scale(target)
	}
	out, err := weightedNormDiffs(batch, target, cfg.PosWeight)
	if err != nil {
		return nil, err
	}
	if velBatch != nil && velTarget != nil && cfg.VelPosWeight != 0 {
		if cfg.NormalizeInput {
			velBatch = NewMinMaxScaler().Scale(velBatch)
			velTarget = NewMinMaxScaler().Scale(velTarget)
		}
		vd, err := weightedNormDiffs(velBatch, velTarget, cfg.VelPosWeight)
		if err != nil {
			return nil, err
		}
		if out, err = addAligned(out, vd); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// EuclideanDistanceMatrix computes the weighted distance of every target
// against every batch element, returning a targets-by-batch matrix. Velocity
// slices, when provided, must run parallel to their position slices.
func EuclideanDistanceMatrix(batch, targets, velBatch, velTargets []r3.Vector, cfg DistanceConfig) (*mat.Dense, error) {
	withVel := velBatch != nil && velTargets != nil && cfg.VelPosWeight != 0
	if withVel {
		if len(velBatch) != len(batch) {
			return nil, newVelocityLengthError(len(velBatch), len(batch))
		}
		if len(velTargets) != len(targets) {
			return nil, newVelocityLengthError(len(velTargets), len(targets))
		}
	}
	if cfg.NormalizeInput {
		batch = NewMinMaxScaler().Scale(batch)
		targets = NewMinMaxScaler().Scale(targets)
		if withVel {
			velBatch = NewMinMaxScaler().Scale(velBatch)
			velTargets = NewMinMaxScaler().Scale(velTargets)
		}
	}
	out := mat.NewDense(len(targets), len(batch), nil)
	for i, tg := range targets {
		for j, b := range batch {
			d := cfg.PosWeight * b.Sub(tg).Norm()
			if withVel {
				d += cfg.VelPosWeight * velBatch[j].Sub(velTargets[i]).Norm()
			}
			out.Set(i, j, d)
		}
	}
	return out, nil
}

// SE3Distance returns weighted distances between aligned batches of
// homogeneous transforms. The rotation term is 1 - cos(relative angle),
// bounded in [0, 2]; the position term is the Euclidean distance between the
// translation columns. Velocity terms are taken from the twist pairs when
// both are non-nil.
func SE3Distance(batch, target []mgl64.Mat4, velBatch, velTarget *VelocityPair, cfg DistanceConfig) ([]float64, error) {
	n, err := spatialmath.BroadcastLength(len(batch), len(target))
	if err != nil {
		return nil, err
	}

	batchPos := translations(batch)
	targetPos := translations(target)
	if cfg.NormalizeInput {
		batchPos = NewMinMaxScaler().Scale(batchPos)
		targetPos = NewMinMaxScaler().Scale(targetPos)
	}

	out := make([]float64, n)
	for i := range out {
		var d float64
		if cfg.RotWeight != 0 {
			c, err := spatialmath.SO3RelativeAngleCos(
				spatialmath.RotationFromMat4(pick(batch, i)),
				spatialmath.RotationFromMat4(pick(target, i)),
			)
			if err != nil {
				return nil, err
			}
			d += cfg.RotWeight * (1 - c)
		}
		if cfg.PosWeight != 0 {
			d += cfg.PosWeight * pick(batchPos, i).Sub(pick(targetPos, i)).Norm()
		}
		out[i] = d
	}

	if velBatch != nil && velTarget != nil {
		if out, err = addVelocityTerms(out, velBatch, velTarget, cfg); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// SE3DistanceMatrix computes the weighted distance of every target transform
// against every batch transform, returning a targets-by-batch matrix.
// Velocity pairs, when provided, must run parallel to their transform
// batches.
func SE3DistanceMatrix(batch, targets []mgl64.Mat4, velBatch, velTargets *VelocityPair, cfg DistanceConfig) (*mat.Dense, error) {
	withVel := velBatch != nil && velTargets != nil
	if withVel {
		if err := checkVelocityPair(velBatch, len(batch)); err != nil {
			return nil, err
		}
		if err := checkVelocityPair(velTargets, len(targets)); err != nil {
			return nil, err
		}
	}

	batchPos := translations(batch)
	targetPos := translations(targets)
	var vb, vt VelocityPair
	if withVel {
		vb, vt = *velBatch, *velTargets
	}
	if cfg.NormalizeInput {
		batchPos = NewMinMaxScaler().Scale(batchPos)
		targetPos = NewMinMaxScaler().Scale(targetPos)
		if withVel {
			vb = normalizePair(vb)
			vt = normalizePair(vt)
		}
	}

	batchRot := rotations(batch)
	targetRot := rotations(targets)
	out := mat.NewDense(len(targets), len(batch), nil)
	for i := range targets {
		for j := range batch {
			var d float64
			if cfg.RotWeight != 0 {
				c, err := spatialmath.SO3RelativeAngleCos(batchRot[j], targetRot[i])
				if err != nil {
					return nil, err
				}
				d += cfg.RotWeight * (1 - c)
			}
			if cfg.PosWeight != 0 {
				d += cfg.PosWeight * batchPos[j].Sub(targetPos[i]).Norm()
			}
			if withVel && cfg.VelPosWeight != 0 {
				d += cfg.VelPosWeight * vb.Linear[j].Sub(vt.Linear[i]).Norm()
			}
			if withVel && cfg.VelRotWeight != 0 {
				d += cfg.VelRotWeight * vb.Angular[j].Sub(vt.Angular[i]).Norm()
			}
			out.Set(i, j, d)
		}
	}
	return out, nil
}

// R3S3Distance returns weighted distances between aligned batches of
// position+quaternion poses. PosWeight scales the quaternion relative-angle
// term and RotWeight the position term.
func R3S3Distance(batch, target []R3S3Pose, cfg DistanceConfig) ([]float64, error) {
	n, err := spatialmath.BroadcastLength(len(batch), len(target))
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		b, tg := pick(batch, i), pick(target, i)
		rd, err := spatialmath.QuaternionRelativeAngle(b.Orientation, tg.Orientation, defaultQuatCosBound)
		if err != nil {
			return nil, err
		}
		td := b.Position.Sub(tg.Position).Norm()
		out[i] = cfg.PosWeight*rd + cfg.RotWeight*td
	}
	return out, nil
}

// SE3Metric is a distance function between two homogeneous transforms.
type SE3Metric func(from, to mgl64.Mat4) (float64, error)

// NewSE3Metric wraps SE3Distance for single-pose callers such as planners
// scoring candidate poses one at a time.
func NewSE3Metric(cfg DistanceConfig) SE3Metric {
	return func(from, to mgl64.Mat4) (float64, error) {
		d, err := SE3Distance([]mgl64.Mat4{from}, []mgl64.Mat4{to}, nil, nil, cfg)
		if err != nil {
			return 0, err
		}
		return d[0], nil
	}
}

// R3S3Metric is a distance function between two position+quaternion poses.
type R3S3Metric func(from, to R3S3Pose) (float64, error)

// NewR3S3Metric wraps R3S3Distance for single-pose callers.
func NewR3S3Metric(cfg DistanceConfig) R3S3Metric {
	return func(from, to R3S3Pose) (float64, error) {
		d, err := R3S3Distance([]R3S3Pose{from}, []R3S3Pose{to}, cfg)
		if err != nil {
			return 0, err
		}
		return d[0], nil
	}
}

func addVelocityTerms(out []float64, velBatch, velTarget *VelocityPair, cfg DistanceConfig) ([]float64, error) {
	vb, vt := *velBatch, *velTarget
	if cfg.NormalizeInput {
		vb = normalizePair(vb)
		vt = normalizePair(vt)
	}
	var err error
	if cfg.VelPosWeight != 0 {
		lin, err2 := weightedNormDiffs(vb.Linear, vt.Linear, cfg.VelPosWeight)
		if err2 != nil {
			return nil, err2
		}
		if out, err = addAligned(out, lin); err != nil {
			return nil, err
		}
	}
	if cfg.VelRotWeight != 0 {
		ang, err2 := weightedNormDiffs(vb.Angular, vt.Angular, cfg.VelRotWeight)
		if err2 != nil {
			return nil, err2
		}
		if out, err = addAligned(out, ang); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func normalizePair(v VelocityPair) VelocityPair {
	return VelocityPair{
		Linear:  NewMinMaxScaler().Scale(v.Linear),
		Angular: NewMinMaxScaler().Scale(v.Angular),
	}
}

func checkVelocityPair(v *VelocityPair, n int) error {
	if len(v.Linear) != n {
		return newVelocityLengthError(len(v.Linear), n)
	}
	if len(v.Angular) != n {
		return newVelocityLengthError(len(v.Angular), n)
	}
	return nil
}

// weightedNormDiffs computes w * |a[i] - b[i]| over two broadcastable
// batches.
func weightedNormDiffs(a, b []r3.Vector, w float64) ([]float64, error) {
	n, err := spatialmath.BroadcastLength(len(a), len(b))
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = w * pick(a, i).Sub(pick(b, i)).Norm()
	}
	return out, nil
}

// addAligned sums two batches elementwise with length-1 promotion.
func addAligned(a, b []float64) ([]float64, error) {
	n, err := spatialmath.BroadcastLength(len(a), len(b))
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = pick(a, i) + pick(b, i)
	}
	return out, nil
}

func translations(hs []mgl64.Mat4) []r3.Vector {
	out := make([]r3.Vector, len(hs))
	for i, h := range hs {
		out[i] = spatialmath.TranslationFromMat4(h)
	}
	return out
}

func rotations(hs []mgl64.Mat4) []*mat.Dense {
	out := make([]*mat.Dense, len(hs))
	for i, h := range hs {
		out[i] = spatialmath.RotationFromMat4(h)
	}
	return out
}

// pick indexes into a batch, holding a length-1 batch fixed so it broadcasts.
func pick[T any](xs []T, i int) T {
	if len(xs) == 1 {
		return xs[0]
	}
	return xs[i]
}
