package model

import (
	"errors"
	"fmt"
	"math"
)

// Common errors returned by MeshBuilder.Build.
var (
	ErrNoVertices     = errors.New("model: mesh has no vertices")
	ErrIndexCount     = errors.New("model: index count is not a multiple of 3")
	ErrIndexRange     = errors.New("model: index out of range")
	ErrNonFiniteValue = errors.New("model: vertex component is NaN or infinite")
)

// MeshBuilder accumulates vertex records and an index buffer and validates them into a Mesh.
type MeshBuilder struct {
	vertices []Vertex
	indices  []uint32
}

// NewMeshBuilder creates an empty MeshBuilder.
func NewMeshBuilder() *MeshBuilder {
	return &MeshBuilder{}
}

// AddVertex appends a vertex record.
//
// Parameters:
//   - v: the vertex to append
//
// Returns:
//   - *MeshBuilder: the builder, for chaining
func (b *MeshBuilder) AddVertex(v Vertex) *MeshBuilder {
	b.vertices = append(b.vertices, v)
	return b
}

// AddVertices appends several vertex records.
func (b *MeshBuilder) AddVertices(vs ...Vertex) *MeshBuilder {
	b.vertices = append(b.vertices, vs...)
	return b
}

// SetIndices replaces the index buffer.
//
// Parameters:
//   - indices: triangle-list indices into the vertex records
//
// Returns:
//   - *MeshBuilder: the builder, for chaining
func (b *MeshBuilder) SetIndices(indices []uint32) *MeshBuilder {
	b.indices = indices
	return b
}

// Build validates the accumulated data and returns the mesh. The builder's slices are
// copied so the builder may be reused.
//
// Returns:
//   - *Mesh: the validated mesh
//   - error: ErrNoVertices, ErrIndexCount, ErrIndexRange or ErrNonFiniteValue, wrapped with context
func (b *MeshBuilder) Build() (*Mesh, error) {
	if len(b.vertices) == 0 {
		return nil, ErrNoVertices
	}
	if len(b.indices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d indices", ErrIndexCount, len(b.indices))
	}
	for i, idx := range b.indices {
		if int(idx) >= len(b.vertices) {
			return nil, fmt.Errorf("%w: index %d at position %d, %d vertices", ErrIndexRange, idx, i, len(b.vertices))
		}
	}
	for i, v := range b.vertices {
		if !finite(v.Position[:]) {
			return nil, fmt.Errorf("%w: position of vertex %d", ErrNonFiniteValue, i)
		}
		if v.Normal != nil && !finite(v.Normal[:]) {
			return nil, fmt.Errorf("%w: normal of vertex %d", ErrNonFiniteValue, i)
		}
	}

	mesh := &Mesh{
		Vertices: make([]Vertex, len(b.vertices)),
		Indices:  make([]uint32, len(b.indices)),
	}
	copy(mesh.Vertices, b.vertices)
	copy(mesh.Indices, b.indices)
	return mesh, nil
}

func finite(values []float32) bool {
	for _, f := range values {
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			return false
		}
	}
	return true
}
