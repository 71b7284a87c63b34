package renderer

import (
	_ "embed"
	"fmt"

	"github.com/Carmen-Shannon/polyview/engine/model"
	"github.com/Carmen-Shannon/polyview/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/mesh.wgsl
var meshShaderBody string

const (
	vertexEntryPoint   = "vs_main"
	fragmentEntryPoint = "fs_main"
)

// MeshShaderSource expands the mesh pipeline's WGSL: the shared VertexInput and FrameUniforms
// structs, the uniform binding, and the vertex and fragment stages.
//
// Returns:
//   - string: the complete WGSL source
//   - []shader.Annotation: the binding declarations the pipeline layout must match
//   - error: an error if the embedded source has a malformed directive
func MeshShaderSource() (string, []shader.Annotation, error) {
	pp := shader.NewPreProcessor(
		shader.WithStruct("vertex", model.GPUVertexSource, "VertexInput"),
		shader.WithStruct("frame_uniforms", GPUFrameUniformsSource, "FrameUniforms"),
	)
	src, err := pp.Process(meshShaderBody)
	if err != nil {
		return "", nil, fmt.Errorf("mesh shader: %w", err)
	}
	return src, pp.Declarations(), nil
}

// bindGroupLayoutEntries converts group-0 declarations into layout entries. Only uniform
// buffers are supported; each is sized for GPUFrameUniforms.
func bindGroupLayoutEntries(declarations []shader.Annotation) ([]wgpu.BindGroupLayoutEntry, error) {
	var uniforms GPUFrameUniforms
	var entries []wgpu.BindGroupLayoutEntry
	for _, d := range declarations {
		if *d.Group != 0 {
			return nil, fmt.Errorf("line %d: only bind group 0 is supported, got %d", d.Line, *d.Group)
		}
		if d.AddressSpace() != shader.AddressSpaceUniform {
			return nil, fmt.Errorf("line %d: unsupported address space %q", d.Line, d.AddressSpace())
		}
		entries = append(entries, wgpu.BindGroupLayoutEntry{
			Binding:    uint32(*d.Binding),
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: uint64(uniforms.Size()),
			},
		})
	}
	if len(entries) != 1 {
		return nil, fmt.Errorf("expected one uniform binding, got %d", len(entries))
	}
	return entries, nil
}
