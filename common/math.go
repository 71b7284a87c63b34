package common

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mat4 is a 4x4 matrix stored column-major, the layout WGSL mat4x4<f32> uniforms expect.
// Element (row r, column c) lives at index c*4+r.
type Mat4 [16]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul returns m * n, so n is applied to a vector first.
//
// Parameters:
//   - n: the right-hand matrix
//
// Returns:
//   - Mat4: the product
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for c := range 4 {
		for r := range 4 {
			var sum float32
			for k := range 4 {
				sum += m[k*4+r] * n[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// Transpose returns the transpose of m.
func (m Mat4) Transpose() Mat4 {
	var out Mat4
	for c := range 4 {
		for r := range 4 {
			out[r*4+c] = m[c*4+r]
		}
	}
	return out
}

// Inverse returns the inverse of m, computed in float64 with gonum.
//
// Returns:
//   - Mat4: the inverse, or m unchanged when it is singular
//   - bool: false if m is singular
func (m Mat4) Inverse() (Mat4, bool) {
	// gonum is row-major, so the column-major data reads as the transpose. Inverting the
	// transpose and reading it back the same way yields the column-major inverse.
	data := make([]float64, 16)
	for i, v := range m {
		data[i] = float64(v)
	}
	a := mat.NewDense(4, 4, data)
	if mat.Det(a) == 0 {
		return m, false
	}

	var inv mat.Dense
	if err := inv.Inverse(a); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return m, false
		}
	}

	var out Mat4
	for i := range out {
		out[i] = float32(inv.At(i/4, i%4))
	}
	return out, true
}

// NormalMatrix returns the inverse transpose of a model matrix, which keeps normals
// perpendicular to surfaces under non-uniform scale. A singular model is returned unchanged.
func NormalMatrix(model Mat4) Mat4 {
	inv, ok := model.Inverse()
	if !ok {
		return model
	}
	return inv.Transpose()
}

// Perspective returns a right-handed perspective projection mapping depth to the
// WebGPU clip range [0, 1].
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport width divided by height
//   - near: near plane distance, > 0
//   - far: far plane distance, > near
//
// Returns:
//   - Mat4: the projection matrix
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := float32(1 / math.Tan(float64(fovY)/2))
	depth := near - far
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, far / depth, -1,
		0, 0, near * far / depth, 0,
	}
}

// LookAt returns the view matrix of a camera at eye facing target.
//
// Parameters:
//   - eye: camera position
//   - target: the point the camera faces
//   - up: the world up direction, usually +Y
//
// Returns:
//   - Mat4: the world-to-view transform
func LookAt(eye, target, up [3]float32) Mat4 {
	e := vec(eye)
	back := unit(r3.Sub(e, vec(target)))
	right := unit(r3.Cross(vec(up), back))
	camUp := r3.Cross(back, right)

	return Mat4{
		float32(right.X), float32(camUp.X), float32(back.X), 0,
		float32(right.Y), float32(camUp.Y), float32(back.Y), 0,
		float32(right.Z), float32(camUp.Z), float32(back.Z), 0,
		float32(-r3.Dot(right, e)), float32(-r3.Dot(camUp, e)), float32(-r3.Dot(back, e)), 1,
	}
}

// EulerRotation returns the rotation Ry * Rx * Rz for the given angles in radians.
func EulerRotation(rx, ry, rz float32) Mat4 {
	sx, cx := math.Sincos(float64(rx))
	sy, cy := math.Sincos(float64(ry))
	sz, cz := math.Sincos(float64(rz))

	return Mat4{
		float32(cy*cz + sy*sx*sz), float32(cx * sz), float32(-sy*cz + cy*sx*sz), 0,
		float32(-cy*sz + sy*sx*cz), float32(cx * cz), float32(sy*sz + cy*sx*cz), 0,
		float32(sy * cx), float32(-sx), float32(cy * cx), 0,
		0, 0, 0, 1,
	}
}

// Transform returns translate * rotate * scale, with rotation given as Euler angles
// applied in EulerRotation order.
//
// Parameters:
//   - position: translation
//   - rotation: Euler angles in radians about X, Y and Z
//   - scale: per-axis scale factors
//
// Returns:
//   - Mat4: the model matrix
func Transform(position, rotation, scale [3]float32) Mat4 {
	m := EulerRotation(rotation[0], rotation[1], rotation[2])
	for c := range 3 {
		for r := range 3 {
			m[c*4+r] *= scale[c]
		}
	}
	m[12], m[13], m[14] = position[0], position[1], position[2]
	return m
}

func vec(v [3]float32) r3.Vec {
	return r3.Vec{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}

// unit normalises v, leaving the zero vector as is.
func unit(v r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n == 0 {
		return v
	}
	return r3.Scale(1/n, v)
}
