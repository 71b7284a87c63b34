package model

// model is the implementation of the Model interface.
type model struct {
	name       string
	geometryID string
	material   string

	mesh *Mesh

	vertexData     []byte
	indexData      []byte
	indexCount     int
	boundingRadius float32
}

// Model is a loaded mesh packaged for rendering: the decoded mesh plus its interleaved GPU
// vertex bytes and uint32 index bytes.
type Model interface {
	// Name returns the name identifier of the model.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// GeometryID returns the id of the source geometry the mesh was decoded from.
	//
	// Returns:
	//   - string: the geometry id, empty for procedural models
	GeometryID() string

	// Material returns the material symbol bound to the source primitive.
	//
	// Returns:
	//   - string: the material symbol, empty when none was bound
	Material() string

	// Mesh returns the decoded mesh backing this model.
	//
	// Returns:
	//   - *Mesh: the mesh, or nil if none was set
	Mesh() *Mesh

	// VertexData returns the interleaved GPUVertex bytes of the mesh.
	//
	// Returns:
	//   - []byte: 24 bytes per vertex
	VertexData() []byte

	// IndexData returns the little-endian uint32 index bytes of the mesh.
	//
	// Returns:
	//   - []byte: 4 bytes per index
	IndexData() []byte

	// IndexCount returns the number of indices in the model's mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// BoundingRadius returns the bounding sphere radius for this model, measured as
	// the maximum vertex distance from the origin.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) GeometryID() string {
	return m.geometryID
}

func (m *model) Material() string {
	return m.material
}

func (m *model) Mesh() *Mesh {
	return m.mesh
}

func (m *model) VertexData() []byte {
	return m.vertexData
}

func (m *model) IndexData() []byte {
	return m.indexData
}

func (m *model) IndexCount() int {
	return m.indexCount
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}
