package renderer

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/polyview/common"
)

// GPUFrameUniformsSource is the WGSL definition of the FrameUniforms struct.
//
//go:embed assets/frame_uniforms.wgsl
var GPUFrameUniformsSource string

// GPUFrameUniforms is the GPU representation of the per-draw uniform block.
// Matches the WGSL FrameUniforms struct (see GPUFrameUniformsSource) exactly.
// Size: 272 bytes (uniform address space, 16-byte aligned, no padding required).
type GPUFrameUniforms struct {
	ViewProj     [16]float32 // offset   0: projection * view (64 bytes)
	Model        [16]float32 // offset  64: model-to-world transform (64 bytes)
	NormalMatrix [16]float32 // offset 128: inverse transpose of Model (64 bytes)
	Eye          [4]float32  // offset 192: camera position, w unused (16 bytes)
	LightDir     [4]float32  // offset 208: light direction (xyz) + ambient strength (w) (16 bytes)
	LightColor   [4]float32  // offset 224: light colour, w unused (16 bytes)
	SurfaceColor [4]float32  // offset 240: RGBA surface colour (16 bytes)
	Specular     [4]float32  // offset 256: specular colour (xyz) + shininess (w) (16 bytes)
}

// Size returns the size of the GPUFrameUniforms struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUFrameUniforms) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUFrameUniforms struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 272-byte buffer ready for GPU upload.
func (g *GPUFrameUniforms) Marshal() []byte {
	out := make([]byte, g.Size())
	copy(out, common.StructToBytes(g))
	return out
}

// buildFrameUniforms assembles the uniform block for one draw. It has no GPU dependencies.
//
// Parameters:
//   - camera: the active camera
//   - light: the active light
//   - material: the active material
//   - modelMatrix: the column-major model matrix of the mesh
//   - aspect: the surface width divided by its height
//
// Returns:
//   - GPUFrameUniforms: the populated uniform block
func buildFrameUniforms(camera Camera, light DirectionalLight, material Material, modelMatrix [16]float32, aspect float32) GPUFrameUniforms {
	if aspect <= 0 {
		aspect = 1
	}

	view := common.LookAt(camera.Eye, camera.Target, camera.Up)
	proj := common.Perspective(camera.FovY, aspect, camera.Near, camera.Far)

	u := GPUFrameUniforms{
		ViewProj:     proj.Mul(view),
		Model:        modelMatrix,
		NormalMatrix: common.NormalMatrix(modelMatrix),
	}

	u.Eye = [4]float32{camera.Eye[0], camera.Eye[1], camera.Eye[2], 1}
	u.LightDir = [4]float32{light.Direction[0], light.Direction[1], light.Direction[2], light.Strength}
	u.LightColor = [4]float32{light.Color[0], light.Color[1], light.Color[2], 1}
	u.SurfaceColor = material.SurfaceColor
	u.Specular = [4]float32{material.SpecularColor[0], material.SpecularColor[1], material.SpecularColor[2], material.Shininess}
	return u
}
