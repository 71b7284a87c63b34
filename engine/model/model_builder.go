package model

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithGeometryID is an option builder that records the source geometry id of the Model.
func WithGeometryID(id string) ModelBuilderOption {
	return func(m *model) {
		m.geometryID = id
	}
}

// WithMaterial is an option builder that records the material symbol of the Model.
func WithMaterial(material string) ModelBuilderOption {
	return func(m *model) {
		m.material = material
	}
}

// WithMesh is an option builder that sets the mesh of the Model and derives the GPU
// vertex bytes, index bytes, index count and bounding radius from it.
//
// Parameters:
//   - mesh: the decoded mesh
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh option to a model
func WithMesh(mesh *Mesh) ModelBuilderOption {
	return func(m *model) {
		m.mesh = mesh
		if mesh == nil {
			m.vertexData, m.indexData, m.indexCount, m.boundingRadius = nil, nil, 0, 0
			return
		}
		m.vertexData = MarshalVertices(mesh.Vertices)
		m.indexData = MarshalIndices(mesh.Indices)
		m.indexCount = len(mesh.Indices)
		m.boundingRadius = mesh.BoundingRadius()
	}
}

// WithBoundingRadius is an option builder that overrides the bounding radius of the Model.
// Apply it after WithMesh.
func WithBoundingRadius(radius float32) ModelBuilderOption {
	return func(m *model) {
		m.boundingRadius = radius
	}
}
