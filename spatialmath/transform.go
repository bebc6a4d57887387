package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// MultiplyTransform composes a world<-link transform with a link<-child
// transform into the world<-child transform, as used when propagating frames
// down a kinematic chain from the root.
func MultiplyTransform(wRotL *mat.Dense, wTransL r3.Vector, lRotC *mat.Dense, lTransC r3.Vector) (*mat.Dense, r3.Vector, error) {
	if err := checkRotationShape(wRotL); err != nil {
		return nil, r3.Vector{}, err
	}
	if err := checkRotationShape(lRotC); err != nil {
		return nil, r3.Vector{}, err
	}
	var wRotC mat.Dense
	wRotC.Mul(wRotL, lRotC)
	wTransC := rotate(wRotL, lTransC).Add(wTransL)
	return &wRotC, wTransC, nil
}

// MultiplyInvTransform composes like MultiplyTransform but takes the parent
// transform in inverted link<-world form, as stored by chains that keep
// inverse transforms per node. The rotation is transposed and the translation
// re-expressed in the world frame before composing, so no explicit matrix
// inversion is needed.
func MultiplyInvTransform(lRotW *mat.Dense, lTransW r3.Vector, lRotC *mat.Dense, lTransC r3.Vector) (*mat.Dense, r3.Vector, error) {
	if err := checkRotationShape(lRotW); err != nil {
		return nil, r3.Vector{}, err
	}
	var wRotL mat.Dense
	wRotL.CloneFrom(lRotW.T())
	wTransL := rotate(&wRotL, lTransW).Mul(-1)
	return MultiplyTransform(&wRotL, wTransL, lRotC, lTransC)
}

// TransformPoint applies a rigid transform to a point. The result follows
// the row-vector convention p*R^T + t used with rows-as-points layouts.
func TransformPoint(p r3.Vector, rot *mat.Dense, trans r3.Vector) r3.Vector {
	return rotate(rot, p).Add(trans)
}

// TransformPoints applies the same rigid transform to every point in a batch,
// returning a fresh slice.
func TransformPoints(pts []r3.Vector, rot *mat.Dense, trans r3.Vector) []r3.Vector {
	out := make([]r3.Vector, len(pts))
	for i, p := range pts {
		out[i] = TransformPoint(p, rot, trans)
	}
	return out
}

// MultiplyTransformBatch composes two batches of rigid transforms
// elementwise. Each side's rotation and translation slices must have equal
// length, and either side may be a single transform broadcast against the
// other.
func MultiplyTransformBatch(wRotL []*mat.Dense, wTransL []r3.Vector, lRotC []*mat.Dense, lTransC []r3.Vector) ([]*mat.Dense, []r3.Vector, error) {
	n, err := transformBatchLength(wRotL, wTransL, lRotC, lTransC)
	if err != nil {
		return nil, nil, err
	}
	rots := make([]*mat.Dense, n)
	trans := make([]r3.Vector, n)
	for i := range rots {
		if rots[i], trans[i], err = MultiplyTransform(pick(wRotL, i), pick(wTransL, i), pick(lRotC, i), pick(lTransC, i)); err != nil {
			return nil, nil, err
		}
	}
	return rots, trans, nil
}

// MultiplyInvTransformBatch is the batch form of MultiplyInvTransform with
// the same broadcasting rules as MultiplyTransformBatch.
func MultiplyInvTransformBatch(lRotW []*mat.Dense, lTransW []r3.Vector, lRotC []*mat.Dense, lTransC []r3.Vector) ([]*mat.Dense, []r3.Vector, error) {
	n, err := transformBatchLength(lRotW, lTransW, lRotC, lTransC)
	if err != nil {
		return nil, nil, err
	}
	rots := make([]*mat.Dense, n)
	trans := make([]r3.Vector, n)
	for i := range rots {
		if rots[i], trans[i], err = MultiplyInvTransform(pick(lRotW, i), pick(lTransW, i), pick(lRotC, i), pick(lTransC, i)); err != nil {
			return nil, nil, err
		}
	}
	return rots, trans, nil
}

func transformBatchLength(rot1 []*mat.Dense, trans1 []r3.Vector, rot2 []*mat.Dense, trans2 []r3.Vector) (int, error) {
	if len(rot1) != len(trans1) {
		return 0, NewBatchLengthError(len(rot1), len(trans1))
	}
	if len(rot2) != len(trans2) {
		return 0, NewBatchLengthError(len(rot2), len(trans2))
	}
	return BroadcastLength(len(rot1), len(rot2))
}
