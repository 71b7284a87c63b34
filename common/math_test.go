package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertMatrixInDelta(t *testing.T, want, got Mat4) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "element %d", i)
	}
}

func TestMulIdentity(t *testing.T) {
	m := Transform([3]float32{1, 2, 3}, [3]float32{0.3, 0.2, 0.1}, [3]float32{1, 1, 1})

	assertMatrixInDelta(t, m, Identity().Mul(m))
	assertMatrixInDelta(t, m, m.Mul(Identity()))
}

func TestMulOrder(t *testing.T) {
	translate := Transform([3]float32{5, 0, 0}, [3]float32{}, [3]float32{1, 1, 1})
	scale := Transform([3]float32{}, [3]float32{}, [3]float32{2, 2, 2})

	// translate * scale scales first, so the translation is untouched.
	m := translate.Mul(scale)
	assert.Equal(t, float32(5), m[12])
	assert.Equal(t, float32(2), m[0])

	m = scale.Mul(translate)
	assert.Equal(t, float32(10), m[12])
}

func TestTranspose(t *testing.T) {
	var m Mat4
	for i := range m {
		m[i] = float32(i)
	}
	out := m.Transpose()
	assert.Equal(t, float32(4), out[1])
	assert.Equal(t, float32(1), out[4])
	assert.Equal(t, m, out.Transpose())
}

func TestInverse(t *testing.T) {
	m := Transform([3]float32{1, -2, 3}, [3]float32{0.4, 1.1, -0.7}, [3]float32{2, 0.5, 3})

	inv, ok := m.Inverse()
	require.True(t, ok)
	assertMatrixInDelta(t, Identity(), m.Mul(inv))
	assertMatrixInDelta(t, Identity(), inv.Mul(m))

	var singular Mat4
	got, ok := singular.Inverse()
	assert.False(t, ok)
	assert.Equal(t, singular, got)
}

func TestNormalMatrix(t *testing.T) {
	rot := EulerRotation(0.5, 1.0, 1.5)
	// A pure rotation is orthonormal, so its inverse transpose is itself.
	assertMatrixInDelta(t, rot, NormalMatrix(rot))

	scaled := Transform([3]float32{}, [3]float32{}, [3]float32{2, 4, 1})
	normal := NormalMatrix(scaled)
	assert.InDelta(t, 0.5, normal[0], 1e-6)
	assert.InDelta(t, 0.25, normal[5], 1e-6)

	var singular Mat4
	assert.Equal(t, singular, NormalMatrix(singular))
}

func TestEulerRotation(t *testing.T) {
	// A quarter turn about Y takes +X to -Z.
	m := EulerRotation(0, math.Pi/2, 0)
	assert.InDelta(t, 0, m[0], 1e-6)
	assert.InDelta(t, -1, m[2], 1e-6)

	// Ry * Rx * Rz: Z rotates first.
	want := EulerRotation(0, 0.3, 0).Mul(EulerRotation(0.2, 0, 0)).Mul(EulerRotation(0, 0, 0.1))
	assertMatrixInDelta(t, want, EulerRotation(0.2, 0.3, 0.1))
}

func TestLookAtPerspective(t *testing.T) {
	view := LookAt([3]float32{0, 0, 10}, [3]float32{}, [3]float32{0, 1, 0})
	proj := Perspective(math.Pi/4, 1, 0.1, 100)
	vp := proj.Mul(view)

	// The origin lies 10 units in front of the camera, so it projects to the centre of
	// clip space with positive w.
	assert.InDelta(t, 0, vp[12], 1e-6)
	assert.InDelta(t, 0, vp[13], 1e-6)
	assert.InDelta(t, 10, vp[15], 1e-5)

	// The near plane maps to depth 0 and the far plane to depth 1.
	for _, tc := range []struct{ dist, depth float32 }{{0.1, 0}, {100, 1}} {
		z := -tc.dist
		clipZ := proj[10]*z + proj[14]
		clipW := proj[11] * z
		assert.InDelta(t, tc.depth, clipZ/clipW, 1e-5)
	}
}

func TestLookAtDegenerate(t *testing.T) {
	// eye == target leaves the basis unnormalised instead of producing NaN.
	view := LookAt([3]float32{1, 1, 1}, [3]float32{1, 1, 1}, [3]float32{0, 1, 0})
	for i, v := range view {
		assert.False(t, math.IsNaN(float64(v)), "element %d", i)
	}
}

func TestStructToBytes(t *testing.T) {
	v := struct{ A, B uint32 }{A: 1, B: 2}
	b := StructToBytes(&v)
	require.Len(t, b, 8)
	assert.Equal(t, byte(1), b[0])
	assert.Equal(t, byte(2), b[4])
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}
