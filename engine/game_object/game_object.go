package game_object

import (
	"math"
	"sync/atomic"

	"github.com/Carmen-Shannon/polyview/common"
	"github.com/Carmen-Shannon/polyview/engine/model"
	"github.com/Carmen-Shannon/polyview/engine/renderer"
)

type gameObject struct {
	name    string
	enabled atomic.Bool
	mdl     model.Model

	handle     renderer.MeshHandle
	registered bool

	position      [3]float32
	scale         [3]float32
	rotationSpeed [3]float32

	// orientation is the accumulated rotation, a column-major 4x4 with no translation.
	orientation common.Mat4
}

// GameObject is a model placed in the world: a registered mesh plus the transform it is drawn with.
// Rotation accumulates: each Step composes a small Euler rotation onto the current orientation,
// so the object tumbles rather than following fixed Euler angles.
type GameObject interface {
	// Name returns the object's display name.
	Name() string

	// Enabled returns whether this object is drawn and animated.
	Enabled() bool

	// SetEnabled enables or disables the object.
	SetEnabled(enabled bool)

	// Model returns the Model associated with this object, or nil if not set.
	Model() model.Model

	// MeshHandle returns the renderer handle for the object's mesh.
	//
	// Returns:
	//   - renderer.MeshHandle: the handle set by SetMeshHandle
	//   - bool: false if the mesh has not been registered
	MeshHandle() (renderer.MeshHandle, bool)

	// SetMeshHandle records the handle returned by Renderer.RegisterMesh.
	SetMeshHandle(handle renderer.MeshHandle)

	// Position returns the world-space translation.
	Position() (x, y, z float32)

	// SetPosition sets the world-space translation.
	SetPosition(x, y, z float32)

	// Scale returns the per-axis scale factors.
	Scale() (sx, sy, sz float32)

	// SetScale sets the per-axis scale factors.
	SetScale(sx, sy, sz float32)

	// RotationSpeed returns the Euler rotation rate in radians per second about X, Y and Z.
	RotationSpeed() (rx, ry, rz float32)

	// SetRotationSpeed sets the Euler rotation rate in radians per second.
	SetRotationSpeed(rx, ry, rz float32)

	// Step advances the orientation by RotationSpeed * dt. Disabled objects do not move.
	//
	// Parameters:
	//   - dt: the elapsed time in seconds
	Step(dt float32)

	// ResetOrientation returns the object to the identity orientation.
	ResetOrientation()

	// ModelMatrix returns the column-major model-to-world transform: translate * rotate * scale.
	ModelMatrix() [16]float32
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new enabled GameObject configured with the given options.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		scale: [3]float32{1, 1, 1},
	}
	obj.enabled.Store(true)
	obj.orientation = common.Identity()
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) Name() string {
	if g.name == "" && g.mdl != nil {
		return g.mdl.Name()
	}
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Model() model.Model {
	return g.mdl
}

func (g *gameObject) MeshHandle() (renderer.MeshHandle, bool) {
	return g.handle, g.registered
}

func (g *gameObject) SetMeshHandle(handle renderer.MeshHandle) {
	g.handle = handle
	g.registered = true
}

func (g *gameObject) Position() (x, y, z float32) {
	return g.position[0], g.position[1], g.position[2]
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.position = [3]float32{x, y, z}
}

func (g *gameObject) Scale() (sx, sy, sz float32) {
	return g.scale[0], g.scale[1], g.scale[2]
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.scale = [3]float32{sx, sy, sz}
}

func (g *gameObject) RotationSpeed() (rx, ry, rz float32) {
	return g.rotationSpeed[0], g.rotationSpeed[1], g.rotationSpeed[2]
}

func (g *gameObject) SetRotationSpeed(rx, ry, rz float32) {
	g.rotationSpeed = [3]float32{rx, ry, rz}
}

func (g *gameObject) Step(dt float32) {
	if !g.Enabled() || dt <= 0 {
		return
	}
	delta := common.EulerRotation(g.rotationSpeed[0]*dt, g.rotationSpeed[1]*dt, g.rotationSpeed[2]*dt)
	next := g.orientation.Mul(delta)
	orthonormalize(&next)
	g.orientation = next
}

func (g *gameObject) ResetOrientation() {
	g.orientation = common.Identity()
}

func (g *gameObject) ModelMatrix() [16]float32 {
	out := g.orientation
	for col := range 3 {
		for row := range 3 {
			out[col*4+row] *= g.scale[col]
		}
	}
	out[12], out[13], out[14] = g.position[0], g.position[1], g.position[2]
	return out
}

// orthonormalize re-orthogonalises the rotation columns of m with Gram-Schmidt, removing
// the drift float32 products accumulate over many frames.
func orthonormalize(m *common.Mat4) {
	col := func(i int) [3]float64 {
		return [3]float64{float64(m[i*4]), float64(m[i*4+1]), float64(m[i*4+2])}
	}
	dot := func(a, b [3]float64) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }
	normalize := func(a [3]float64) [3]float64 {
		l := math.Sqrt(dot(a, a))
		if l == 0 {
			return a
		}
		return [3]float64{a[0] / l, a[1] / l, a[2] / l}
	}

	x := normalize(col(0))
	y := col(1)
	d := dot(x, y)
	y = normalize([3]float64{y[0] - d*x[0], y[1] - d*x[1], y[2] - d*x[2]})
	// z = x cross y keeps the basis right-handed.
	z := [3]float64{x[1]*y[2] - x[2]*y[1], x[2]*y[0] - x[0]*y[2], x[0]*y[1] - x[1]*y[0]}

	for i, c := range [3][3]float64{x, y, z} {
		m[i*4], m[i*4+1], m[i*4+2] = float32(c[0]), float32(c[1]), float32(c[2])
	}
}
