package model

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGPUVertexMarshal(t *testing.T) {
	v := GPUVertex{Position: [3]float32{1, 2, 3}, Normal: [3]float32{0, 0, -1}}
	assert.Equal(t, 24, v.Size())

	buf := v.Marshal()
	require.Len(t, buf, 24)
	assert.Equal(t, float32(2), math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8])))
	assert.Equal(t, float32(-1), math.Float32frombits(binary.LittleEndian.Uint32(buf[20:24])))
}

func TestGPUVertexLayout(t *testing.T) {
	layout := GPUVertexLayout()
	assert.Equal(t, uint64(24), layout.ArrayStride)
	require.Len(t, layout.Attributes, 2)
	assert.Equal(t, wgpu.VertexFormatFloat32x3, layout.Attributes[1].Format)
	assert.Equal(t, uint64(12), layout.Attributes[1].Offset)
	assert.Contains(t, GPUVertexSource, "struct VertexInput")
}

func TestToGPUVerticesZeroesMissingNormals(t *testing.T) {
	n := [3]float32{0, 1, 0}
	gpu := ToGPUVertices([]Vertex{
		{Position: [3]float32{1, 1, 1}, Normal: &n},
		{Position: [3]float32{2, 2, 2}},
	})
	require.Len(t, gpu, 2)
	assert.Equal(t, n, gpu[0].Normal)
	assert.Equal(t, [3]float32{}, gpu[1].Normal)
}

func TestNewModelWithMesh(t *testing.T) {
	mesh, err := NewMeshBuilder().AddVertices(triangleVertices()...).SetIndices([]uint32{0, 1, 2}).Build()
	require.NoError(t, err)

	m := NewModel(
		WithName("tri"),
		WithGeometryID("tri-mesh"),
		WithMaterial("mat"),
		WithMesh(mesh),
	)

	assert.Equal(t, "tri", m.Name())
	assert.Equal(t, "tri-mesh", m.GeometryID())
	assert.Equal(t, "mat", m.Material())
	assert.Same(t, mesh, m.Mesh())
	assert.Len(t, m.VertexData(), 3*24)
	assert.Len(t, m.IndexData(), 3*4)
	assert.Equal(t, 3, m.IndexCount())
	assert.InDelta(t, 1.0, m.BoundingRadius(), 1e-6)
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(m.IndexData()[8:12]))

	overridden := NewModel(WithMesh(mesh), WithBoundingRadius(5))
	assert.Equal(t, float32(5), overridden.BoundingRadius())
}
