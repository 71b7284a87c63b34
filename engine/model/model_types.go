package model

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// --- Vertex & Mesh Types ---

// Vertex is a single decoded vertex record. One record is produced per polygon corner,
// so vertices shared between polygons are repeated rather than welded.
type Vertex struct {
	// Position is the object-space position (X, Y, Z).
	Position [3]float32

	// Normal is the object-space normal, nil when the source primitive binds no NORMAL input.
	Normal *[3]float32

	// TexCoord is reserved for texture coordinates and is currently always empty.
	TexCoord []float32
}

// Mesh is an indexed triangle mesh produced by a MeshBuilder.
type Mesh struct {
	// Vertices are the vertex records in emission order.
	Vertices []Vertex

	// Indices reference Vertices, three per triangle.
	Indices []uint32
}

// VertexCount returns the number of vertex records in the mesh.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles described by the index buffer.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// HasNormals reports whether every vertex carries a normal.
func (m *Mesh) HasNormals() bool {
	if len(m.Vertices) == 0 {
		return false
	}
	for _, v := range m.Vertices {
		if v.Normal == nil {
			return false
		}
	}
	return true
}

// Bounds returns the axis-aligned bounding box of all vertex positions.
// An empty mesh yields the zero box.
//
// Returns:
//   - r3.Box: the min/max corners of the bounding box
func (m *Mesh) Bounds() r3.Box {
	if len(m.Vertices) == 0 {
		return r3.Box{}
	}
	first := toVec(m.Vertices[0].Position)
	box := r3.Box{Min: first, Max: first}
	for _, v := range m.Vertices[1:] {
		p := toVec(v.Position)
		box.Min = r3.Vec{X: math.Min(box.Min.X, p.X), Y: math.Min(box.Min.Y, p.Y), Z: math.Min(box.Min.Z, p.Z)}
		box.Max = r3.Vec{X: math.Max(box.Max.X, p.X), Y: math.Max(box.Max.Y, p.Y), Z: math.Max(box.Max.Z, p.Z)}
	}
	return box
}

// BoundingRadius returns the maximum distance of any vertex position from the origin.
// Used to frame the camera around the mesh.
//
// Returns:
//   - float32: the bounding sphere radius about the origin
func (m *Mesh) BoundingRadius() float32 {
	var radius float64
	for _, v := range m.Vertices {
		if d := r3.Norm(toVec(v.Position)); d > radius {
			radius = d
		}
	}
	return float32(radius)
}

// SurfaceArea returns the summed area of every triangle in the index buffer.
// Trailing indices that do not form a full triangle are ignored.
//
// Returns:
//   - float64: the total surface area
func (m *Mesh) SurfaceArea() float64 {
	var area float64
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := toVec(m.Vertices[m.Indices[i]].Position)
		b := toVec(m.Vertices[m.Indices[i+1]].Position)
		c := toVec(m.Vertices[m.Indices[i+2]].Position)
		area += 0.5 * r3.Norm(r3.Cross(r3.Sub(b, a), r3.Sub(c, a)))
	}
	return area
}

func toVec(p [3]float32) r3.Vec {
	return r3.Vec{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])}
}

// --- Import Types ---

// ImportedModel is the CPU-side result of importing a model file, before it is packaged
// into a Model.
type ImportedModel struct {
	// Name is the model name, taken from the geometry name or id.
	Name string

	// GeometryID is the id of the geometry the mesh was decoded from.
	GeometryID string

	// Material is the material symbol bound to the decoded primitive, if any.
	Material string

	// Mesh is the decoded triangle mesh.
	Mesh *Mesh
}
