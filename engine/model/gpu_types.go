package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct for mesh pipelines.
// Matches GPUVertex layout exactly (24 bytes, tightly packed).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUVertex is the GPU representation of a single mesh vertex.
// Matches the WGSL VertexInput struct layout exactly (see GPUVertexSource).
// Size: 24 bytes.
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Normal   [3]float32 // offset 12: vertex normal for lighting, zero when absent (12 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 24-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, 24)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Normal[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Normal[1]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Normal[2]))
	return buf
}

// GPUVertexLayout returns the vertex buffer layout matching GPUVertex for pipeline creation.
//
// Returns:
//   - wgpu.VertexBufferLayout: position at location 0, normal at location 1
func GPUVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: 24,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		},
	}
}

// ToGPUVertices converts decoded vertex records to their GPU form. Missing normals are
// uploaded as the zero vector.
//
// Parameters:
//   - vertices: the vertex records to convert
//
// Returns:
//   - []GPUVertex: one GPU vertex per record
func ToGPUVertices(vertices []Vertex) []GPUVertex {
	out := make([]GPUVertex, len(vertices))
	for i, v := range vertices {
		out[i].Position = v.Position
		if v.Normal != nil {
			out[i].Normal = *v.Normal
		}
	}
	return out
}

// MarshalVertices serializes vertex records into one interleaved GPU vertex buffer.
func MarshalVertices(vertices []Vertex) []byte {
	gpu := ToGPUVertices(vertices)
	buf := make([]byte, 0, len(gpu)*24)
	for i := range gpu {
		buf = append(buf, gpu[i].Marshal()...)
	}
	return buf
}

// MarshalIndices serializes a uint32 index buffer in little-endian order.
func MarshalIndices(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], idx)
	}
	return buf
}
