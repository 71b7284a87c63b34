package game_object

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/polyview/common"
	"github.com/Carmen-Shannon/polyview/engine/model"
	"github.com/Carmen-Shannon/polyview/engine/renderer"
	"github.com/stretchr/testify/assert"
)

func assertMatrixInDelta(t *testing.T, want, got [16]float32) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "element %d", i)
	}
}

func TestNewGameObjectDefaults(t *testing.T) {
	obj := NewGameObject(WithModel(model.NewModel(model.WithName("cube"))))

	assert.True(t, obj.Enabled())
	assert.Equal(t, "cube", obj.Name())
	_, ok := obj.MeshHandle()
	assert.False(t, ok)

	assert.Equal(t, [16]float32(common.Identity()), obj.ModelMatrix())
}

func TestMeshHandle(t *testing.T) {
	obj := NewGameObject(WithName("named"))
	obj.SetMeshHandle(renderer.MeshHandle(3))

	handle, ok := obj.MeshHandle()
	assert.True(t, ok)
	assert.Equal(t, renderer.MeshHandle(3), handle)
	assert.Equal(t, "named", obj.Name())
}

func TestStepSingleAxis(t *testing.T) {
	obj := NewGameObject(WithRotationSpeed(0, math.Pi/2, 0))

	// Four quarter-second steps at pi/2 rad/s is a quarter turn about Y.
	for range 4 {
		obj.Step(0.25)
	}

	assertMatrixInDelta(t, common.EulerRotation(0, math.Pi/2, 0), obj.ModelMatrix())
}

func TestStepStaysOrthonormal(t *testing.T) {
	obj := NewGameObject(WithRotationSpeed(math.Pi/2, math.Pi/3, math.Pi/4))
	for range 10_000 {
		obj.Step(1.0 / 60)
	}

	m := obj.ModelMatrix()
	for c := range 3 {
		x, y, z := float64(m[c*4]), float64(m[c*4+1]), float64(m[c*4+2])
		assert.InDelta(t, 1, math.Sqrt(x*x+y*y+z*z), 1e-5, "column %d length", c)
	}
	dot := float64(m[0]*m[4] + m[1]*m[5] + m[2]*m[6])
	assert.InDelta(t, 0, dot, 1e-5)
}

func TestStepDisabledAndReset(t *testing.T) {
	obj := NewGameObject(WithRotationSpeed(1, 1, 1), WithEnabled(false))
	before := obj.ModelMatrix()
	obj.Step(1)
	assert.Equal(t, before, obj.ModelMatrix())

	obj.SetEnabled(true)
	obj.Step(1)
	assert.NotEqual(t, before, obj.ModelMatrix())

	obj.ResetOrientation()
	assert.Equal(t, before, obj.ModelMatrix())
}

func TestModelMatrixTranslateScale(t *testing.T) {
	obj := NewGameObject(WithPosition(1, 2, 3), WithScale(2, 3, 4))

	want := common.Transform([3]float32{1, 2, 3}, [3]float32{}, [3]float32{2, 3, 4})
	assertMatrixInDelta(t, want, obj.ModelMatrix())

	obj.SetPosition(0, 0, 0)
	obj.SetScale(1, 1, 1)
	x, _, _ := obj.Position()
	sx, _, _ := obj.Scale()
	assert.Equal(t, float32(0), x)
	assert.Equal(t, float32(1), sx)
}
