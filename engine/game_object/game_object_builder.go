package game_object

import "github.com/Carmen-Shannon/polyview/engine/model"

// GameObjectBuilderOption is a functional option for configuring a GameObject.
type GameObjectBuilderOption func(*gameObject)

// WithName sets the object's display name. Without it the model name is used.
//
// Parameters:
//   - name: the display name
//
// Returns:
//   - GameObjectBuilderOption: option function to apply
func WithName(name string) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.name = name
	}
}

// WithEnabled sets whether the object starts enabled.
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.enabled.Store(enabled)
	}
}

// WithModel sets the Model the object draws.
//
// Parameters:
//   - m: the model
//
// Returns:
//   - GameObjectBuilderOption: option function to apply
func WithModel(m model.Model) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.mdl = m
	}
}

// WithPosition sets the initial world-space translation.
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.position = [3]float32{x, y, z}
	}
}

// WithScale sets the per-axis scale factors.
func WithScale(sx, sy, sz float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.scale = [3]float32{sx, sy, sz}
	}
}

// WithRotationSpeed sets the Euler rotation rate in radians per second about X, Y and Z.
//
// Parameters:
//   - rx, ry, rz: the rotation rate about each axis
//
// Returns:
//   - GameObjectBuilderOption: option function to apply
func WithRotationSpeed(rx, ry, rz float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.rotationSpeed = [3]float32{rx, ry, rz}
	}
}
