package metrics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"

	"github.com/TomCC7/torch-robotics/spatialmath"
)

func makePose(t *testing.T, omega, trans r3.Vector) mgl64.Mat4 {
	t.Helper()
	h, err := spatialmath.Mat4FromRotationTranslation(spatialmath.ExpMapSO3(omega), trans)
	test.That(t, err, test.ShouldBeNil)
	return h
}

func TestEuclideanDistance(t *testing.T) {
	batch := []r3.Vector{{X: 1}, {X: 4}}
	target := []r3.Vector{{}}

	t.Run("weighted norms with target broadcast", func(t *testing.T) {
		d, err := EuclideanDistance(batch, target, nil, nil, DistanceConfig{PosWeight: 2})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, d, test.ShouldResemble, []float64{2, 8})
	})

	t.Run("velocity channel adds its own weighted norm", func(t *testing.T) {
		vel := []r3.Vector{{Y: 3}, {Y: 3}}
		velTarget := []r3.Vector{{}}
		d, err := EuclideanDistance(batch, target, vel, velTarget, DistanceConfig{PosWeight: 1, VelPosWeight: 1})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, d[0], test.ShouldAlmostEqual, 4)
		test.That(t, d[1], test.ShouldAlmostEqual, 7)
	})

	t.Run("zero velocity weight tolerates missing velocities", func(t *testing.T) {
		d, err := EuclideanDistance(batch, target, nil, nil, DistanceConfig{PosWeight: 1})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, d, test.ShouldResemble, []float64{1, 4})
	})

	t.Run("incompatible lengths", func(t *testing.T) {
		_, err := EuclideanDistance(batch, []r3.Vector{{}, {}, {}}, nil, nil, DefaultDistanceConfig())
		test.That(t, err, test.ShouldNotBeNil)
	})

	t.Run("normalized input scales each channel into the unit box", func(t *testing.T) {
		b := []r3.Vector{{}, {X: 10, Y: 20, Z: 30}}
		tg := []r3.Vector{{}, {X: 100, Y: 200, Z: 300}}
		d, err := EuclideanDistance(b, tg, nil, nil, DistanceConfig{PosWeight: 1, NormalizeInput: true})
		test.That(t, err, test.ShouldBeNil)
		// both channels normalize to {0, 1} so the distances vanish
		test.That(t, d[0], test.ShouldAlmostEqual, 0)
		test.That(t, d[1], test.ShouldAlmostEqual, 0)
	})
}

func TestEuclideanDistanceMatrix(t *testing.T) {
	batch := []r3.Vector{{X: 1}, {X: 2}, {X: 3}}
	targets := []r3.Vector{{}, {X: 1}}

	d, err := EuclideanDistanceMatrix(batch, targets, nil, nil, DistanceConfig{PosWeight: 1})
	test.That(t, err, test.ShouldBeNil)
	rows, cols := d.Dims()
	test.That(t, rows, test.ShouldEqual, 2)
	test.That(t, cols, test.ShouldEqual, 3)
	test.That(t, d.At(0, 0), test.ShouldAlmostEqual, 1)
	test.That(t, d.At(0, 2), test.ShouldAlmostEqual, 3)
	test.That(t, d.At(1, 0), test.ShouldAlmostEqual, 0)
	test.That(t, d.At(1, 2), test.ShouldAlmostEqual, 2)

	t.Run("velocity slices must run parallel to positions", func(t *testing.T) {
		_, err := EuclideanDistanceMatrix(batch, targets, []r3.Vector{{}}, []r3.Vector{{}, {}}, DefaultDistanceConfig())
		test.That(t, err, test.ShouldNotBeNil)
	})
}

func TestSE3Distance(t *testing.T) {
	poseA := makePose(t, r3.Vector{Z: 0.3}, r3.Vector{X: 1, Y: 2, Z: 3})
	poseB := makePose(t, r3.Vector{Z: 1.1}, r3.Vector{X: 1, Y: 2, Z: 7})

	t.Run("identical poses score zero for every weight configuration", func(t *testing.T) {
		for _, cfg := range []DistanceConfig{
			DefaultDistanceConfig(),
			{PosWeight: 1},
			{RotWeight: 1},
			{PosWeight: 0.5, RotWeight: 10},
			{},
		} {
			d, err := SE3Distance([]mgl64.Mat4{poseA, poseB}, []mgl64.Mat4{poseA, poseB}, nil, nil, cfg)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, d[0], test.ShouldAlmostEqual, 0, 1e-9)
			test.That(t, d[1], test.ShouldAlmostEqual, 0, 1e-9)
		}
	})

	t.Run("rotation and position terms", func(t *testing.T) {
		d, err := SE3Distance([]mgl64.Mat4{poseA}, []mgl64.Mat4{poseB}, nil, nil, DistanceConfig{PosWeight: 1, RotWeight: 1})
		test.That(t, err, test.ShouldBeNil)
		want := (1 - math.Cos(0.8)) + 4.0
		test.That(t, d[0], test.ShouldAlmostEqual, want, 1e-6)
	})

	t.Run("zero rotation weight uses only translation", func(t *testing.T) {
		d, err := SE3Distance([]mgl64.Mat4{poseA}, []mgl64.Mat4{poseB}, nil, nil, DistanceConfig{PosWeight: 2})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, d[0], test.ShouldAlmostEqual, 8, 1e-9)
	})

	t.Run("velocity terms", func(t *testing.T) {
		velBatch := &VelocityPair{
			Linear:  []r3.Vector{{X: 1}},
			Angular: []r3.Vector{{Z: 2}},
		}
		velTarget := &VelocityPair{
			Linear:  []r3.Vector{{}},
			Angular: []r3.Vector{{}},
		}
		d, err := SE3Distance([]mgl64.Mat4{poseA}, []mgl64.Mat4{poseA}, velBatch, velTarget,
			DistanceConfig{VelPosWeight: 1, VelRotWeight: 3})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, d[0], test.ShouldAlmostEqual, 1+6, 1e-9)
	})

	t.Run("single target broadcasts", func(t *testing.T) {
		d, err := SE3Distance([]mgl64.Mat4{poseA, poseB}, []mgl64.Mat4{poseA}, nil, nil, DefaultDistanceConfig())
		test.That(t, err, test.ShouldBeNil)
		test.That(t, d, test.ShouldHaveLength, 2)
		test.That(t, d[0], test.ShouldAlmostEqual, 0, 1e-9)
		test.That(t, d[1], test.ShouldBeGreaterThan, 0)
	})
}

func TestSE3DistanceMatrix(t *testing.T) {
	poseA := makePose(t, r3.Vector{}, r3.Vector{})
	poseB := makePose(t, r3.Vector{Z: math.Pi / 2}, r3.Vector{X: 3})

	d, err := SE3DistanceMatrix([]mgl64.Mat4{poseA, poseB}, []mgl64.Mat4{poseA}, nil, nil,
		DistanceConfig{PosWeight: 1, RotWeight: 1})
	test.That(t, err, test.ShouldBeNil)
	rows, cols := d.Dims()
	test.That(t, rows, test.ShouldEqual, 1)
	test.That(t, cols, test.ShouldEqual, 2)
	test.That(t, d.At(0, 0), test.ShouldAlmostEqual, 0, 1e-9)
	// quarter turn contributes 1 - cos(pi/2) = 1, translation contributes 3
	test.That(t, d.At(0, 1), test.ShouldAlmostEqual, 4, 1e-9)

	t.Run("velocity pair lengths are checked", func(t *testing.T) {
		bad := &VelocityPair{Linear: []r3.Vector{{}}, Angular: []r3.Vector{{}, {}}}
		_, err := SE3DistanceMatrix([]mgl64.Mat4{poseA}, []mgl64.Mat4{poseA}, bad, bad, DefaultDistanceConfig())
		test.That(t, err, test.ShouldNotBeNil)
	})
}

func TestR3S3Distance(t *testing.T) {
	s2 := math.Sqrt(2) / 2
	identity := R3S3Pose{Orientation: quat.Number{Real: 1}}
	quarterZ := R3S3Pose{Orientation: quat.Number{Real: s2, Kmag: s2}}

	t.Run("rotation term is scaled by the position weight", func(t *testing.T) {
		d, err := R3S3Distance([]R3S3Pose{identity}, []R3S3Pose{quarterZ}, DistanceConfig{PosWeight: 2})
		test.That(t, err, test.ShouldBeNil)
		// the quaternion dot is cos(pi/4), well inside the arccos bounds
		test.That(t, d[0], test.ShouldAlmostEqual, 2*math.Pi/4, 1e-6)
	})

	t.Run("position term is scaled by the rotation weight", func(t *testing.T) {
		near := R3S3Pose{Position: r3.Vector{X: 5}, Orientation: quat.Number{Real: 1}}
		d, err := R3S3Distance([]R3S3Pose{identity}, []R3S3Pose{near}, DistanceConfig{RotWeight: 3})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, d[0], test.ShouldAlmostEqual, 15, 1e-6)
	})

	t.Run("single target broadcasts over the batch", func(t *testing.T) {
		d, err := R3S3Distance([]R3S3Pose{identity, quarterZ}, []R3S3Pose{quarterZ}, DistanceConfig{PosWeight: 1})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, d, test.ShouldHaveLength, 2)
		test.That(t, d[0], test.ShouldAlmostEqual, math.Pi/4, 1e-6)
	})
}

func TestMetricWrappers(t *testing.T) {
	poseA := makePose(t, r3.Vector{Z: 0.2}, r3.Vector{X: 1})

	se3 := NewSE3Metric(DefaultDistanceConfig())
	d, err := se3(poseA, poseA)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, d, test.ShouldAlmostEqual, 0, 1e-9)

	r3s3 := NewR3S3Metric(DistanceConfig{RotWeight: 1})
	p := R3S3Pose{Position: r3.Vector{Y: 2}, Orientation: quat.Number{Real: 1}}
	q := R3S3Pose{Position: r3.Vector{Y: 4}, Orientation: quat.Number{Real: 1}}
	d, err = r3s3(p, q)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, d, test.ShouldAlmostEqual, 2, 1e-6)
}
