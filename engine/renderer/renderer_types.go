package renderer

import "math"

// Camera is a perspective camera looking from Eye towards Target.
type Camera struct {
	Eye    [3]float32
	Target [3]float32
	Up     [3]float32

	// FovY is the vertical field of view in radians.
	FovY float32
	Near float32
	Far  float32
}

// DefaultCamera returns a camera at (0, 0, 10) looking at the origin with a 45 degree field of view.
func DefaultCamera() Camera {
	return Camera{
		Eye:    [3]float32{0, 0, 10},
		Target: [3]float32{0, 0, 0},
		Up:     [3]float32{0, 1, 0},
		FovY:   math.Pi / 4,
		Near:   0.1,
		Far:    1000,
	}
}

// DirectionalLight is a light shining along Direction with uniform intensity.
type DirectionalLight struct {
	Direction [3]float32
	Color     [3]float32

	// Strength is the ambient contribution added to every fragment, in the range [0, 1].
	Strength float32
}

// DefaultLight returns a white light travelling along (1, -1, -1) with strength 0.25.
func DefaultLight() DirectionalLight {
	return DirectionalLight{
		Direction: [3]float32{1, -1, -1},
		Color:     [3]float32{1, 1, 1},
		Strength:  0.25,
	}
}

// Material is the Blinn-Phong surface description shared by every mesh drawn.
type Material struct {
	SurfaceColor  [4]float32
	SpecularColor [3]float32
	Shininess     float32
}

// DefaultMaterial returns an opaque red material with a white highlight and shininess 4.
func DefaultMaterial() Material {
	return Material{
		SurfaceColor:  [4]float32{1, 0, 0, 1},
		SpecularColor: [3]float32{1, 1, 1},
		Shininess:     4,
	}
}

// MeshHandle identifies a mesh registered with RegisterMesh.
type MeshHandle int
