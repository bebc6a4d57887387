package spatialmath

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// RotationFromMat4 extracts the upper-left 3x3 rotation block of a
// homogeneous transform.
func RotationFromMat4(h mgl64.Mat4) *mat.Dense {
	out := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.Set(i, j, h.At(i, j))
		}
	}
	return out
}

// TranslationFromMat4 extracts the translation column of a homogeneous
// transform.
func TranslationFromMat4(h mgl64.Mat4) r3.Vector {
	return r3.Vector{X: h.At(0, 3), Y: h.At(1, 3), Z: h.At(2, 3)}
}

// Mat4FromRotationTranslation assembles a homogeneous transform from a 3x3
// rotation and a translation vector.
func Mat4FromRotationTranslation(rot *mat.Dense, t r3.Vector) (mgl64.Mat4, error) {
	if err := checkRotationShape(rot); err != nil {
		return mgl64.Mat4{}, err
	}
	out := mgl64.Ident4()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.Set(i, j, rot.At(i, j))
		}
	}
	out.Set(0, 3, t.X)
	out.Set(1, 3, t.Y)
	out.Set(2, 3, t.Z)
	return out, nil
}
